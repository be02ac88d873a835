package page

import "github.com/poiesic/essaysearch/core"

// SubmitMonitor provides hooks to observe page submissions.
// Rejected submissions never reach Start or Finish.
type SubmitMonitor interface {
	Start(query string)
	Succeeded(query string, resp *core.SearchResponse)
	Failed(query string, err error)
	Rejected(query string, err error)
	Finish(query string)
}

// noopMonitor is a no-op implementation of SubmitMonitor
type noopMonitor struct{}

var _ SubmitMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                             {}
func (n *noopMonitor) Succeeded(_ string, _ *core.SearchResponse) {}
func (n *noopMonitor) Failed(_ string, _ error)                   {}
func (n *noopMonitor) Rejected(_ string, _ error)                 {}
func (n *noopMonitor) Finish(_ string)                            {}
