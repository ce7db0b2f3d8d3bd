package entity

import "time"

type ScenarioStatus string

const (
	ScenarioPassed  ScenarioStatus = "passed"
	ScenarioFailed  ScenarioStatus = "failed"
	ScenarioSkipped ScenarioStatus = "skipped"
)

type ScenarioResult struct {
	Name     string
	Status   ScenarioStatus
	Duration time.Duration
	Error    string
}
