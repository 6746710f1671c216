package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/tapecheck-dev/tapecheck/internal/domain/values"
	"github.com/tapecheck-dev/tapecheck/internal/engine"
)

// JUnitFormatter formats run results as JUnit XML.
type JUnitFormatter struct {
	writer io.Writer
}

// NewJUnitFormatter creates a new JUnit formatter.
func NewJUnitFormatter(w io.Writer) *JUnitFormatter {
	return &JUnitFormatter{writer: w}
}

// JUnitTestSuites JUnit XML structures
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Time      float64         `xml:"time,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

// Format writes the run result as JUnit XML. Each check maps to a test
// case; its unwaived violations become the failure content.
func (f *JUnitFormatter) Format(result *engine.RunResult) error {
	suite := JUnitTestSuite{
		Name:     result.ChecklistName,
		Tests:    result.Summary.TotalChecks,
		Failures: result.Summary.FailedChecks,
		Time:     result.Duration.Seconds(),
	}

	for _, check := range result.Checks {
		c := JUnitTestCase{
			Name:      check.ID,
			ClassName: check.Name,
			Time:      check.Duration.Seconds(),
		}

		if check.Status == values.StatusFail {
			var lines []string
			for _, item := range check.Sections.Error {
				lines = append(lines, fmt.Sprintf("%s [%s:%s]", item.Text, displayFile(item.File), displayLine(item.Line)))
			}
			c.Failure = &JUnitFailure{
				Message: check.Reason,
				Content: strings.Join(lines, "\n"),
			}
		}

		suite.TestCases = append(suite.TestCases, c)
	}

	suites := JUnitTestSuites{
		Name:       result.ChecklistName,
		Tests:      suite.Tests,
		Failures:   suite.Failures,
		Time:       suite.Time,
		TestSuites: []JUnitTestSuite{suite},
	}

	if _, err := f.writer.Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(suites); err != nil {
		return fmt.Errorf("failed to encode JUnit XML: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}
