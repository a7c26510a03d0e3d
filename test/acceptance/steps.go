package acceptance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cucumber/godog"
)

// envelope mirrors the API response wrapper.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

type apiError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// runView is the subset of run fields the features assert on.
type runView struct {
	ID       string  `json:"id"`
	Dataset  string  `json:"dataset"`
	K        int     `json:"k"`
	Seed     int64   `json:"seed"`
	Inertia  float64 `json:"inertia"`
	Sizes    []int   `json:"sizes"`
	Features []string `json:"features"`
}

// StepsContext holds state shared between step definitions
type StepsContext struct {
	serverURL string
	client    *http.Client

	response     *http.Response
	responseBody []byte

	savedRunID string
}

// NewStepsContext creates a new steps context
func NewStepsContext(serverURL string) *StepsContext {
	return &StepsContext{
		serverURL: serverURL,
		client:    &http.Client{},
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Requests
	sc.Step(`^I request the server status$`, s.iRequestTheServerStatus)
	sc.Step(`^I list the datasets$`, s.iListTheDatasets)
	sc.Step(`^I fetch the dataset "([^"]*)"$`, s.iFetchTheDataset)
	sc.Step(`^I request (\d+) records of "([^"]*)" starting at (\d+)$`, s.iRequestRecords)
	sc.Step(`^I cluster "([^"]*)" on "([^"]*)" and "([^"]*)" into (\d+) clusters with seed (\d+)$`, s.iCluster)
	sc.Step(`^I cluster "([^"]*)" on "([^"]*)" and "([^"]*)" into (\d+) clusters with seed (\d+) without saving$`, s.iClusterWithoutSaving)
	sc.Step(`^I list the runs$`, s.iListTheRuns)
	sc.Step(`^I fetch the saved run$`, s.iFetchTheSavedRun)
	sc.Step(`^I delete the saved run$`, s.iDeleteTheSavedRun)

	// Assertions
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the error code should be "([^"]*)"$`, s.theErrorCodeShouldBe)
	sc.Step(`^the error suggestion should be "([^"]*)"$`, s.theErrorSuggestionShouldBe)
	sc.Step(`^the server should report itself as "([^"]*)"$`, s.theServerShouldReportItselfAs)
	sc.Step(`^the dataset "([^"]*)" should be listed$`, s.theDatasetShouldBeListed)
	sc.Step(`^the default dataset should be "([^"]*)"$`, s.theDefaultDatasetShouldBe)
	sc.Step(`^the dataset should have (\d+) rows$`, s.theDatasetShouldHaveRows)
	sc.Step(`^I should receive (\d+) records out of (\d+)$`, s.iShouldReceiveRecordsOutOf)
	sc.Step(`^the run should report (\d+) clusters$`, s.theRunShouldReportClusters)
	sc.Step(`^the run should be saved$`, s.theRunShouldBeSaved)
	sc.Step(`^the run should not be saved$`, s.theRunShouldNotBeSaved)
	sc.Step(`^every point should have a cluster label$`, s.everyPointShouldHaveAClusterLabel)
	sc.Step(`^the cluster sizes should sum to (\d+)$`, s.theClusterSizesShouldSumTo)
	sc.Step(`^the runs list should contain the saved run$`, s.theRunsListShouldContainTheSavedRun)
	sc.Step(`^the runs list should not contain the saved run$`, s.theRunsListShouldNotContainTheSavedRun)
}

// Request helpers

func (s *StepsContext) get(path string) error {
	resp, err := s.client.Get(s.serverURL + path)
	if err != nil {
		return err
	}
	return s.capture(resp)
}

func (s *StepsContext) post(path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := s.client.Post(s.serverURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	return s.capture(resp)
}

func (s *StepsContext) capture(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	s.response = resp
	s.responseBody = body
	return nil
}

// decodeData unwraps the success envelope into out.
func (s *StepsContext) decodeData(out any) error {
	var env envelope
	if err := json.Unmarshal(s.responseBody, &env); err != nil {
		return fmt.Errorf("failed to parse response %q: %w", s.responseBody, err)
	}
	if env.Error != nil {
		return fmt.Errorf("unexpected error response: %s %s", env.Error.Code, env.Error.Message)
	}
	return json.Unmarshal(env.Data, out)
}

func (s *StepsContext) decodeError() (*apiError, error) {
	var env envelope
	if err := json.Unmarshal(s.responseBody, &env); err != nil {
		return nil, fmt.Errorf("failed to parse response %q: %w", s.responseBody, err)
	}
	if env.Error == nil {
		return nil, fmt.Errorf("expected an error envelope, got: %s", s.responseBody)
	}
	return env.Error, nil
}

// Request steps

func (s *StepsContext) iRequestTheServerStatus() error {
	return s.get("/v1/status")
}

func (s *StepsContext) iListTheDatasets() error {
	return s.get("/v1/datasets")
}

func (s *StepsContext) iFetchTheDataset(name string) error {
	return s.get("/v1/datasets/" + name)
}

func (s *StepsContext) iRequestRecords(limit int, name string, offset int) error {
	return s.get(fmt.Sprintf("/v1/datasets/%s/records?limit=%d&offset=%d", name, limit, offset))
}

func (s *StepsContext) iCluster(name, x, y string, k, seed int) error {
	return s.clusterRequest(name, x, y, k, seed, true)
}

func (s *StepsContext) iClusterWithoutSaving(name, x, y string, k, seed int) error {
	return s.clusterRequest(name, x, y, k, seed, false)
}

func (s *StepsContext) clusterRequest(name, x, y string, k, seed int, save bool) error {
	err := s.post("/v1/datasets/"+name+"/cluster", map[string]any{
		"x":    x,
		"y":    y,
		"k":    k,
		"seed": seed,
		"save": save,
	})
	if err != nil {
		return err
	}

	// Remember the run id for later steps when the request succeeded.
	if s.response.StatusCode < 300 {
		var result struct {
			Run runView `json:"run"`
		}
		if err := s.decodeData(&result); err != nil {
			return err
		}
		if result.Run.ID != "" {
			s.savedRunID = result.Run.ID
		}
	}
	return nil
}

func (s *StepsContext) iListTheRuns() error {
	return s.get("/v1/runs")
}

func (s *StepsContext) iFetchTheSavedRun() error {
	if s.savedRunID == "" {
		return fmt.Errorf("no run was saved in this scenario")
	}
	return s.get("/v1/runs/" + s.savedRunID)
}

func (s *StepsContext) iDeleteTheSavedRun() error {
	if s.savedRunID == "" {
		return fmt.Errorf("no run was saved in this scenario")
	}
	req, err := http.NewRequest(http.MethodDelete, s.serverURL+"/v1/runs/"+s.savedRunID, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	return s.capture(resp)
}

// Assertion steps

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theErrorCodeShouldBe(code string) error {
	apiErr, err := s.decodeError()
	if err != nil {
		return err
	}
	if apiErr.Code != code {
		return fmt.Errorf("expected error code %q, got %q", code, apiErr.Code)
	}
	return nil
}

func (s *StepsContext) theErrorSuggestionShouldBe(suggestion string) error {
	apiErr, err := s.decodeError()
	if err != nil {
		return err
	}
	if apiErr.Suggestion != suggestion {
		return fmt.Errorf("expected suggestion %q, got %q", suggestion, apiErr.Suggestion)
	}
	return nil
}

func (s *StepsContext) theServerShouldReportItselfAs(status string) error {
	var data struct {
		Status string `json:"status"`
	}
	if err := s.decodeData(&data); err != nil {
		return err
	}
	if data.Status != status {
		return fmt.Errorf("expected status %q, got %q", status, data.Status)
	}
	return nil
}

func (s *StepsContext) theDatasetShouldBeListed(name string) error {
	data, err := s.datasetsList()
	if err != nil {
		return err
	}
	for _, ds := range data.Datasets {
		if ds.Name == name {
			return nil
		}
	}
	return fmt.Errorf("dataset %q not in list", name)
}

func (s *StepsContext) theDefaultDatasetShouldBe(name string) error {
	data, err := s.datasetsList()
	if err != nil {
		return err
	}
	if data.Default != name {
		return fmt.Errorf("expected default dataset %q, got %q", name, data.Default)
	}
	return nil
}

func (s *StepsContext) datasetsList() (*struct {
	Datasets []struct {
		Name string `json:"name"`
	} `json:"datasets"`
	Default string `json:"default"`
}, error) {
	var data struct {
		Datasets []struct {
			Name string `json:"name"`
		} `json:"datasets"`
		Default string `json:"default"`
	}
	if err := s.decodeData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *StepsContext) theDatasetShouldHaveRows(rows int) error {
	var data struct {
		Rows int `json:"rows"`
	}
	if err := s.decodeData(&data); err != nil {
		return err
	}
	if data.Rows != rows {
		return fmt.Errorf("expected %d rows, got %d", rows, data.Rows)
	}
	return nil
}

func (s *StepsContext) iShouldReceiveRecordsOutOf(count, total int) error {
	var data struct {
		Records []map[string]any `json:"records"`
		Total   int              `json:"total"`
	}
	if err := s.decodeData(&data); err != nil {
		return err
	}
	if len(data.Records) != count {
		return fmt.Errorf("expected %d records, got %d", count, len(data.Records))
	}
	if data.Total != total {
		return fmt.Errorf("expected total %d, got %d", total, data.Total)
	}
	return nil
}

func (s *StepsContext) clusterResult() (*struct {
	Run    runView `json:"run"`
	X      []float64 `json:"x"`
	Labels []int   `json:"labels"`
}, error) {
	var data struct {
		Run    runView `json:"run"`
		X      []float64 `json:"x"`
		Labels []int   `json:"labels"`
	}
	if err := s.decodeData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *StepsContext) theRunShouldReportClusters(k int) error {
	result, err := s.clusterResult()
	if err != nil {
		return err
	}
	if result.Run.K != k {
		return fmt.Errorf("expected k=%d, got %d", k, result.Run.K)
	}
	return nil
}

func (s *StepsContext) theRunShouldBeSaved() error {
	result, err := s.clusterResult()
	if err != nil {
		return err
	}
	if result.Run.ID == "" {
		return fmt.Errorf("expected the run to have an id")
	}
	return nil
}

func (s *StepsContext) theRunShouldNotBeSaved() error {
	result, err := s.clusterResult()
	if err != nil {
		return err
	}
	if result.Run.ID != "" {
		return fmt.Errorf("expected no run id, got %q", result.Run.ID)
	}
	return nil
}

func (s *StepsContext) everyPointShouldHaveAClusterLabel() error {
	result, err := s.clusterResult()
	if err != nil {
		return err
	}
	if len(result.Labels) == 0 {
		return fmt.Errorf("expected labels, got none")
	}
	if len(result.Labels) != len(result.X) {
		return fmt.Errorf("expected %d labels, got %d", len(result.X), len(result.Labels))
	}
	for i, label := range result.Labels {
		if label < 0 || label >= result.Run.K {
			return fmt.Errorf("point %d has out-of-range label %d", i, label)
		}
	}
	return nil
}

func (s *StepsContext) theClusterSizesShouldSumTo(total int) error {
	result, err := s.clusterResult()
	if err != nil {
		return err
	}
	sum := 0
	for _, size := range result.Run.Sizes {
		sum += size
	}
	if sum != total {
		return fmt.Errorf("expected sizes to sum to %d, got %d", total, sum)
	}
	return nil
}

func (s *StepsContext) theRunsListShouldContainTheSavedRun() error {
	return s.runsListContains(true)
}

func (s *StepsContext) theRunsListShouldNotContainTheSavedRun() error {
	return s.runsListContains(false)
}

func (s *StepsContext) runsListContains(want bool) error {
	if s.savedRunID == "" {
		return fmt.Errorf("no run was saved in this scenario")
	}

	var data struct {
		Runs []runView `json:"runs"`
	}
	if err := s.decodeData(&data); err != nil {
		return err
	}

	for _, run := range data.Runs {
		if run.ID == s.savedRunID {
			if want {
				return nil
			}
			return fmt.Errorf("run %s still listed", s.savedRunID)
		}
	}
	if want {
		return fmt.Errorf("run %s not in list", s.savedRunID)
	}
	return nil
}
