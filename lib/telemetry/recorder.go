package telemetry

import "sync"

type Report struct {
	ID     string
	Params []any
}

// Recorder is an API that keeps every report in memory so tests can assert on them.
type Recorder struct {
	mutex    sync.Mutex
	broken   []Report
	warnings []Report
	counts   map[string]int64
}

func NewRecorder() *Recorder {
	return &Recorder{counts: map[string]int64{}}
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.broken = append(r.broken, Report{ID: id, Params: params})
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.warnings = append(r.warnings, Report{ID: id, Params: params})
}

func (r *Recorder) ReportDebug(string, ...any) {}

func (r *Recorder) ReportCount(id string, count int64) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.counts[id] = count
}

func (r *Recorder) Broken() []Report {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]Report(nil), r.broken...)
}

// Warnings returns the warnings reported under id.
func (r *Recorder) Warnings(id string) []Report {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	var out []Report
	for _, w := range r.warnings {
		if w.ID == id {
			out = append(out, w)
		}
	}
	return out
}

// Count returns the last count reported under id.
func (r *Recorder) Count(id string) (int64, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	n, ok := r.counts[id]
	return n, ok
}
