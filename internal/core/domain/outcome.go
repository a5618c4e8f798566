package domain

import "time"

// UnitResult is the build executor's report for one unit.
type UnitResult struct {
	Unit     InternedString `json:"unit"`
	Success  bool           `json:"success"`
	Duration time.Duration  `json:"duration"`
}

// TestResult is the test runner's report for one test.
type TestResult struct {
	Test     string        `json:"test"`
	Passed   bool          `json:"passed"`
	Duration time.Duration `json:"duration"`
	// CoveredFiles lists the files observed to be exercised by the test,
	// used to grow the coverage map.
	CoveredFiles []string `json:"covered_files,omitzero"`
}

// Outcome is the result of one incremental run. It is the payload stored in
// the cache for the request fingerprint.
type Outcome struct {
	Fingerprint string        `json:"fingerprint"`
	CreatedAt   time.Time     `json:"created_at"`
	FromCache   bool          `json:"from_cache"`
	FullSuite   bool          `json:"full_suite"`
	Rebuilt     []string      `json:"rebuilt"`
	Preserved   []string      `json:"preserved"`
	UnitResults []UnitResult  `json:"unit_results,omitzero"`
	TestResults []TestResult  `json:"test_results,omitzero"`
	Cost        time.Duration `json:"estimated_cost"`
}
