// SPDX-License-Identifier: Apache-2.0

package archive

// ProgressSink receives byte-count updates while a download streams to disk.
// total is -1 when the server did not send a Content-Length.
type ProgressSink interface {
	OnStart(url string, total int64)
	OnProgress(read int64)
	OnComplete()
}

// NopProgressSink discards all progress notifications.
type NopProgressSink struct{}

func (NopProgressSink) OnStart(string, int64) {}
func (NopProgressSink) OnProgress(int64)      {}
func (NopProgressSink) OnComplete()           {}
