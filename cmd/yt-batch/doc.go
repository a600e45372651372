// Command yt-batch downloads a numbered range of videos from a JSON list
// file, and builds such list files from channel pages or playlists.
//
// The root command runs a batch: `yt-batch start end [input_file] [folder]`,
// or interactively without arguments. Subcommands:
//
//	collect <channel-url>    scrape a channel's videos tab into a list file
//	playlist <url|id>        write a playlist's items to a list file
//	list [input_file]        preview numbered entries and their labels
//
// Settings come from built-in defaults, an optional TOML file (--config or
// YT_BATCH_CONFIG) and flags, in that order.
package main
