package config

import (
	"fmt"
)

type EndpointStruct struct{}

func NewEndpointStruct() *EndpointStruct {
	return &EndpointStruct{}
}

// Students returns the student collection path
func (r *EndpointStruct) Students() string {
	return "/api/students"
}

// Student returns the path of a single student
func (r *EndpointStruct) Student(id int64) string {
	return fmt.Sprintf("/api/students/%d", id)
}

// StudentSearch returns the student search path; filters go in the query string
func (r *EndpointStruct) StudentSearch() string {
	return "/api/students/search"
}

// Fees returns the fee collection path
func (r *EndpointStruct) Fees() string {
	return "/api/fees"
}

// Fee returns the path of a single fee record
func (r *EndpointStruct) Fee(id int64) string {
	return fmt.Sprintf("/api/fees/%d", id)
}

// FeesByStudent returns the path listing a student's fee records
func (r *EndpointStruct) FeesByStudent(studentID int64) string {
	return fmt.Sprintf("/api/fees/student/%d", studentID)
}

// FeeTotalByStudent returns the path of a student's total paid amount
func (r *EndpointStruct) FeeTotalByStudent(studentID int64) string {
	return fmt.Sprintf("/api/fees/student/%d/total", studentID)
}

var Endpoint = NewEndpointStruct()
