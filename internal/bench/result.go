package bench

import (
	"fmt"
	"sort"
)

// Counters is the confusion matrix of one weakness class.
type Counters struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	TN int `json:"tn"`
	FN int `json:"fn"`
}

// Total is the number of fixtures evaluated.
func (c Counters) Total() int { return c.TP + c.FP + c.TN + c.FN }

// Precision is TP/(TP+FP), or 1 when nothing was flagged.
func (c Counters) Precision() float64 {
	if c.TP+c.FP == 0 {
		return 1
	}
	return float64(c.TP) / float64(c.TP+c.FP)
}

// Recall is TP/(TP+FN), or 1 when there was nothing to find.
func (c Counters) Recall() float64 {
	if c.TP+c.FN == 0 {
		return 1
	}
	return float64(c.TP) / float64(c.TP+c.FN)
}

func (c *Counters) record(truth Truth, flagged bool) {
	switch {
	case truth == Vulnerable && flagged:
		c.TP++
	case truth == Vulnerable:
		c.FN++
	case flagged:
		c.FP++
	default:
		c.TN++
	}
}

// Aggregate is the sum of every class's counters. Unlike a single class,
// its precision and recall are 0 on an empty denominator.
type Aggregate struct {
	Counters
}

// Precision is TP/(TP+FP) over all classes, or 0 when nothing was flagged.
func (a Aggregate) Precision() float64 {
	if a.TP+a.FP == 0 {
		return 0
	}
	return float64(a.TP) / float64(a.TP+a.FP)
}

// Recall is TP/(TP+FN) over all classes, or 0 when there was nothing to find.
func (a Aggregate) Recall() float64 {
	if a.TP+a.FN == 0 {
		return 0
	}
	return float64(a.TP) / float64(a.TP+a.FN)
}

// ClassResult is one row of the report.
type ClassResult struct {
	Class string
	Counters
	// Degraded marks a class measured against the placeholder sample only.
	Degraded bool
}

// Result holds the counters of a finished run.
type Result struct {
	counters map[string]*Counters
	degraded map[string]bool
}

// NewResult returns zeroed counters for every class.
func NewResult(classes []string) *Result {
	r := &Result{
		counters: make(map[string]*Counters, len(classes)),
		degraded: make(map[string]bool),
	}
	for _, c := range classes {
		r.counters[c] = &Counters{}
	}
	return r
}

// Record counts one evaluated fixture.
func (r *Result) Record(fx Fixture, flagged bool) error {
	c, ok := r.counters[fx.Class]
	if !ok {
		return fmt.Errorf("bench: class %q is not measured", fx.Class)
	}
	c.record(fx.Truth, flagged)
	return nil
}

// MarkDegraded flags class as measured without curated safe samples.
func (r *Result) MarkDegraded(class string) {
	if _, ok := r.counters[class]; ok {
		r.degraded[class] = true
	}
}

// Measures reports whether class is one of the result's classes.
func (r *Result) Measures(class string) bool {
	_, ok := r.counters[class]
	return ok
}

// Counters returns the counters of class.
func (r *Result) Counters(class string) (Counters, bool) {
	c, ok := r.counters[class]
	if !ok {
		return Counters{}, false
	}
	return *c, true
}

// Rows returns one ClassResult per class, sorted by class id.
func (r *Result) Rows() []ClassResult {
	classes := make([]string, 0, len(r.counters))
	for c := range r.counters {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	rows := make([]ClassResult, len(classes))
	for i, c := range classes {
		rows[i] = ClassResult{Class: c, Counters: *r.counters[c], Degraded: r.degraded[c]}
	}
	return rows
}

// Total sums the rows.
func (r *Result) Total() Aggregate {
	var a Aggregate
	for _, row := range r.Rows() {
		a.TP += row.TP
		a.FP += row.FP
		a.TN += row.TN
		a.FN += row.FN
	}
	return a
}

// Degraded lists classes without curated safe samples, sorted.
func (r *Result) Degraded() []string {
	var out []string
	for _, row := range r.Rows() {
		if row.Degraded {
			out = append(out, row.Class)
		}
	}
	return out
}
