package domain

import "fmt"

type StateKind string

const (
	StateIdle           StateKind = "idle"
	StateNeedsNamespace StateKind = "needs_namespace"
	StateNoTables       StateKind = "no_tables"
	StateNeedsSelection StateKind = "needs_selection"
	StateNoData         StateKind = "no_data"
	StateError          StateKind = "error"
	StateData           StateKind = "data"
)

type Severity string

const (
	SeverityNone    Severity = ""
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// RenderState is everything the UI needs for one evaluation. Exactly one of
// Message or (Records, Matrix) is meaningful, depending on Kind.
type RenderState struct {
	Kind     StateKind
	Severity Severity
	Message  string

	Namespace string
	Tables    []string // tables offered for selection
	Selected  []string

	Records []CountRecord
	Matrix  *MetricsMatrix
}

func Idle() RenderState {
	return RenderState{
		Kind:     StateIdle,
		Severity: SeverityInfo,
		Message:  "Enter a namespace to get started.",
	}
}

func NeedsNamespace() RenderState {
	return RenderState{
		Kind:     StateNeedsNamespace,
		Severity: SeverityInfo,
		Message:  "Please enter a database name to proceed.",
	}
}

func NoTables(namespace string) RenderState {
	return RenderState{
		Kind:      StateNoTables,
		Severity:  SeverityWarning,
		Message:   fmt.Sprintf("No tables found in the database '%s'.", namespace),
		Namespace: namespace,
	}
}

func NeedsSelection(namespace string, tables []string) RenderState {
	return RenderState{
		Kind:      StateNeedsSelection,
		Severity:  SeverityInfo,
		Message:   "Please select at least one table to analyze.",
		Namespace: namespace,
		Tables:    tables,
	}
}

func NoData(namespace string, tables, selected []string) RenderState {
	return RenderState{
		Kind:      StateNoData,
		Severity:  SeverityWarning,
		Message:   "No data found for the selected tables.",
		Namespace: namespace,
		Tables:    tables,
		Selected:  selected,
	}
}

// Failed never carries tables or data, so stale results are not shown next to
// the error.
func Failed(namespace string, err error) RenderState {
	return RenderState{
		Kind:      StateError,
		Severity:  SeverityError,
		Message:   fmt.Sprintf("Error accessing database: %s", err.Error()),
		Namespace: namespace,
	}
}

func Data(namespace string, tables, selected []string, records []CountRecord, matrix *MetricsMatrix) RenderState {
	return RenderState{
		Kind:      StateData,
		Severity:  SeverityNone,
		Namespace: namespace,
		Tables:    tables,
		Selected:  selected,
		Records:   records,
		Matrix:    matrix,
	}
}

func (s RenderState) HasData() bool {
	return s.Kind == StateData && s.Matrix != nil
}
