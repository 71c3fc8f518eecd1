/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package form implements the report form controller: the list of visit
// input blocks, their validation and serialization, the call to the
// analysis endpoint and the view of its results.
package form

import (
	"context"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/humaidq/clinitrend/analysis"
	"github.com/humaidq/clinitrend/logging"
)

var logger = logging.Logger(logging.SourceForm)

// Analyzer submits an analysis request. The HTTP client implements it.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*analysis.Response, error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithCharts enables trend charts on parameter cards.
func WithCharts(enabled bool) Option {
	return func(c *Controller) {
		c.charts = enabled
	}
}

// View is a snapshot of the controller used for rendering.
type View struct {
	Patient PatientFields
	Visits  []VisitForm
	Error   string
	Loading bool
	Results *Results
}

// Controller holds the state of one report form.
type Controller struct {
	mu       sync.Mutex
	analyzer Analyzer
	charts   bool

	ids     idGenerator
	order   []int
	visits  map[int]*VisitForm
	patient PatientFields

	errMsg   string
	results  *Results
	inFlight int
}

// NewController returns a controller with no visit blocks.
func NewController(a Analyzer, opts ...Option) *Controller {
	c := &Controller{
		analyzer: a,
		visits:   make(map[int]*VisitForm),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// AddVisitForm appends a visit block and returns its identifier. The
// leading block of the form is not removable.
func (c *Controller) AddVisitForm() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.ids.next()
	c.visits[id] = &VisitForm{ID: id, Removable: len(c.order) > 0}
	c.order = append(c.order, id)

	return id
}

// RemoveVisit removes the identified block. Unknown ids and the leading
// block are a no-op.
func (c *Controller) RemoveVisit(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.visits[id]; !ok || !v.Removable {
		return false
	}

	delete(c.visits, id)
	c.order = slices.DeleteFunc(c.order, func(v int) bool { return v == id })

	return true
}

// Visit returns a copy of the identified block.
func (c *Controller) Visit(id int) (VisitForm, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.visits[id]
	if !ok {
		return VisitForm{}, false
	}

	return *v, true
}

// SetVisit replaces the input values of an existing block. ID and
// Removable are kept.
func (c *Controller) SetVisit(v VisitForm) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.visits[v.ID]
	if !ok {
		return false
	}

	current.Date = v.Date
	current.Glucose = v.Glucose
	current.Cholesterol = v.Cholesterol
	current.BloodPressure = v.BloodPressure

	return true
}

// SetPatient replaces the patient inputs.
func (c *Controller) SetPatient(p PatientFields) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.patient = p
}

// ApplyInput copies posted form values into the controller. Only fields
// present in values are changed; fields of unknown visits are ignored.
func (c *Controller) ApplyInput(values url.Values) {
	c.mu.Lock()
	defer c.mu.Unlock()

	setIfPresent(values, FieldPatientName, &c.patient.Name)
	setIfPresent(values, FieldPatientID, &c.patient.ID)
	setIfPresent(values, FieldPatientAge, &c.patient.Age)
	setIfPresent(values, FieldPatientGender, &c.patient.Gender)
	setIfPresent(values, FieldReportType, &c.patient.ReportType)

	for _, id := range c.order {
		v := c.visits[id]
		setIfPresent(values, v.Field(FieldDate), &v.Date)
		setIfPresent(values, v.Field(FieldGlucose), &v.Glucose)
		setIfPresent(values, v.Field(FieldCholesterol), &v.Cholesterol)
		setIfPresent(values, v.Field(FieldBloodPressure), &v.BloodPressure)
	}
}

func setIfPresent(values url.Values, key string, dst *string) {
	if values.Has(key) {
		*dst = values.Get(key)
	}
}

// CollectReports returns the valid visit entries in display order.
func (c *Controller) CollectReports() []analysis.VisitEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.collectReportsLocked()
}

func (c *Controller) collectReportsLocked() []analysis.VisitEntry {
	reports := make([]analysis.VisitEntry, 0, len(c.order))

	for _, id := range c.order {
		if entry, ok := c.visits[id].Entry(); ok {
			reports = append(reports, entry)
		}
	}

	return reports
}

// AnalyzeReports validates the form, submits it and records the outcome
// in the results or error region. The lock is released while the request
// is in flight so the form stays usable. A second call does not cancel a
// running one; whichever finishes last owns the results region.
func (c *Controller) AnalyzeReports(ctx context.Context) error {
	c.mu.Lock()

	c.results = nil
	c.errMsg = ""

	if strings.TrimSpace(c.patient.Name) == "" {
		c.errMsg = MsgMissingName
		c.mu.Unlock()

		return ErrMissingName
	}

	if c.patient.ReportType == "" {
		c.errMsg = MsgMissingReportType
		c.mu.Unlock()

		return ErrMissingReportType
	}

	reports := c.collectReportsLocked()
	if len(reports) == 0 {
		c.errMsg = MsgNoReports
		c.mu.Unlock()

		return ErrNoReports
	}

	req := analysis.Request{
		Reports:     reports,
		PatientInfo: c.patient.Info(),
	}

	c.inFlight++
	c.mu.Unlock()

	resp, err := c.analyzer.Analyze(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight--

	if err == nil && resp == nil {
		err = ErrEmptyResponse
	}

	if err != nil {
		c.errMsg = "Error: " + err.Error()
		return err
	}

	c.results = NewResults(resp, c.charts)

	return nil
}

// DisplayResults replaces the results region with the given analysis. A
// nil response clears the region.
func (c *Controller) DisplayResults(resp *analysis.Response) {
	results := NewResults(resp, c.charts)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.results = results
}

// LoadRequest replaces the form contents with a previously submitted
// request and reports how many visits were loaded and skipped. Visits
// without a date or measurement are skipped. When nothing is loadable the
// form is left untouched. Loaded blocks get fresh identifiers.
func (c *Controller) LoadRequest(req analysis.Request) (loaded, skipped int) {
	usable := make([]analysis.VisitEntry, 0, len(req.Reports))
	for _, report := range req.Reports {
		if strings.TrimSpace(report.Date) == "" || !report.HasMeasurement() {
			skipped++
			continue
		}

		usable = append(usable, report)
	}

	if len(usable) == 0 {
		return 0, skipped
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.visits)
	c.order = c.order[:0]

	for _, report := range usable {
		id := c.ids.next()
		c.visits[id] = &VisitForm{
			ID:            id,
			Date:          report.Date,
			Glucose:       rawMeasurement(report.Glucose),
			Cholesterol:   rawMeasurement(report.Cholesterol),
			BloodPressure: rawMeasurement(report.BloodPressure),
			Removable:     len(c.order) > 0,
		}
		c.order = append(c.order, id)
	}

	info := req.PatientInfo
	c.patient = PatientFields{
		Name:       info.Name,
		ID:         clearDefault(info.ID),
		Age:        clearDefault(info.Age),
		Gender:     clearDefault(info.Gender),
		ReportType: info.ReportType,
	}
	c.results = nil
	c.errMsg = ""

	return len(usable), skipped
}

func rawMeasurement(m analysis.Measurement) string {
	if !m.Valid {
		return ""
	}

	return formatNumber(m.Value)
}

func clearDefault(s string) string {
	if s == analysis.DefaultValue {
		return ""
	}

	return s
}

// ShowError sets the message of the error region.
func (c *Controller) ShowError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errMsg = message
}

// Loading reports whether an analysis request is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.inFlight > 0
}

// View returns a snapshot of the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	visits := make([]VisitForm, 0, len(c.order))
	for _, id := range c.order {
		visits = append(visits, *c.visits[id])
	}

	return View{
		Patient: c.patient,
		Visits:  visits,
		Error:   c.errMsg,
		Loading: c.inFlight > 0,
		Results: c.results,
	}
}
