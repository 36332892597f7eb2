package xesstep

import "github.com/kbukum/xesmeta/check"

const (
	msgReceivingRowsOK    = "XESStep.CheckResult.ReceivingRows.OK"
	msgReceivingRowsError = "XESStep.CheckResult.ReceivingRows.ERROR"
)

// Check adds exactly one remark to sink: OK when the step has at least one
// input step, ERROR otherwise. Parameters are not inspected.
func (m *Meta) Check(sink check.Sink, stepName string, input []string) {
	r := check.Remark{Source: stepName}
	if len(input) > 0 {
		r.Severity = check.SeverityOK
		r.Text = m.msgs.Get(msgReceivingRowsOK)
	} else {
		r.Severity = check.SeverityError
		r.Text = m.msgs.Get(msgReceivingRowsError)
	}
	sink.Add(r)
}

// Validate runs Check into a fresh list.
func (m *Meta) Validate(stepName string, input []string) check.List {
	var remarks check.List
	m.Check(&remarks, stepName, input)
	return remarks
}
