package batch

import "github.com/ytget/yt-batch/internal/model"

// Observer is notified about run progress. Calls happen on the processing
// goroutine, in processing order.
type Observer interface {
	RunStarted(rng model.Range, total int)
	ItemStarted(item model.WorkItem, index, total int)
	ItemSucceeded(item model.WorkItem)
	ItemFailed(rec model.FailureRecord)
	ItemSkipped(item model.WorkItem)
	RunFinished(result model.RunResult)
}

// NopObserver ignores every notification
type NopObserver struct{}

func (NopObserver) RunStarted(model.Range, int) {}
func (NopObserver) ItemStarted(model.WorkItem, int, int) {}
func (NopObserver) ItemSucceeded(model.WorkItem) {}
func (NopObserver) ItemFailed(model.FailureRecord) {}
func (NopObserver) ItemSkipped(model.WorkItem) {}
func (NopObserver) RunFinished(model.RunResult) {}
