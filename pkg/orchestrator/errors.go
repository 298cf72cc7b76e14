package orchestrator

import "errors"

// ErrorSet accumulates non-fatal diagnostics across a single Transpile
// call, grounded on the teacher's compiler.ErrorSet: Transpile records
// an unsupported source language or a recovered per-target generation
// error here instead of returning an error. Parsers do not add to it.
type ErrorSet struct {
	Errs []error
}

func (e *ErrorSet) Add(err error) {
	if err == nil {
		return
	}
	var subErrs *ErrorSet
	if errors.As(err, &subErrs) {
		e.Errs = append(e.Errs, subErrs.Unwrap()...)
		return
	}
	e.Errs = append(e.Errs, err)
}

func (e *ErrorSet) Error() string {
	return errors.Join(e.Errs...).Error()
}

func (e *ErrorSet) Unwrap() []error {
	return e.Errs
}

func (e *ErrorSet) Empty() bool {
	return len(e.Errs) == 0
}

func (e *ErrorSet) Strings() []string {
	out := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		out[i] = err.Error()
	}
	return out
}
