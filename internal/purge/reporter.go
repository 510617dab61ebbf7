package purge

import (
	"fmt"
	"io"
)

const (
	branchNotFoundReportConstant          = "fatal: branch not found"
	divergenceReportTemplateConstant      = "fatal: " + divergedErrorTemplateConstant
	synchronizationRequiredReportConstant = "branches must be synchronized before purging commit history"
)

// Reporter prints the user-facing outcome of conditions that stop a purge.
type Reporter struct {
	output io.Writer
}

// NewReporter constructs a Reporter writing to output.
func NewReporter(output io.Writer) *Reporter {
	if output == nil {
		output = io.Discard
	}
	return &Reporter{output: output}
}

// ReportDivergence prints the branch, its behind/ahead counts and the synchronization requirement.
func (reporter *Reporter) ReportDivergence(branch string, status SyncStatus) {
	fmt.Fprintf(reporter.output, divergenceReportTemplateConstant+"\n", branch, status.Behind, status.Ahead)
	fmt.Fprintln(reporter.output, synchronizationRequiredReportConstant)
}

// ReportBranchNotFound prints the not-found message.
func (reporter *Reporter) ReportBranchNotFound() {
	fmt.Fprintln(reporter.output, branchNotFoundReportConstant)
}

// ReportPlan prints one line per planned operation.
func (reporter *Reporter) ReportPlan(operations []Operation) {
	for _, operation := range operations {
		fmt.Fprintln(reporter.output, operation.String())
	}
}
