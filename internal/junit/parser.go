// Package junit parses JUnit-style XML reports as produced by nosetests.
package junit

import (
	"encoding/xml"
	"fmt"
)

// TestSuites is the <testsuites> wrapper some report generators emit.
type TestSuites struct {
	XMLName xml.Name    `xml:"testsuites"`
	Suites  []TestSuite `xml:"testsuite"`
}

// TestSuite represents a <testsuite> element.
type TestSuite struct {
	Name      string     `xml:"name,attr"`
	Tests     int        `xml:"tests,attr"`
	Failures  int        `xml:"failures,attr"`
	Errors    int        `xml:"errors,attr"`
	Skip      int        `xml:"skip,attr"`
	TestCases []TestCase `xml:"testcase"`
}

// TestCase represents a <testcase> element.
type TestCase struct {
	ClassName string  `xml:"classname,attr"`
	Name      string  `xml:"name,attr"`
	Time      float64 `xml:"time,attr"`
	Failure   *Result `xml:"failure"`
	Error     *Result `xml:"error"`
}

// Result carries the message and captured output of a <failure> or <error> child.
type Result struct {
	Type    string `xml:"type,attr"`
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

// Parse decodes a JUnit XML report. Both a bare <testsuite> root and a
// <testsuites> wrapper are accepted.
func Parse(data []byte) ([]TestSuite, error) {
	var wrapper TestSuites
	if err := xml.Unmarshal(data, &wrapper); err == nil && len(wrapper.Suites) > 0 {
		return wrapper.Suites, nil
	}

	var suite TestSuite
	if err := xml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parse junit xml: %w", err)
	}
	return []TestSuite{suite}, nil
}
