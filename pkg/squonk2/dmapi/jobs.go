package dmapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// InstanceSpec describes a job instance to start. Specification is the Job
// specification, which will include the collection, job, version and
// (probably) some variables.
type InstanceSpec struct {
	ProjectID       string
	Name            string
	Specification   map[string]interface{}
	CallbackURL     string
	CallbackContext string
	Debug           string
}

// getLatestJobOperatorVersion gets Job application data from the DM API,
// returning the latest version found. An empty string indicates the server
// has no Job Operator installed.
func (c *Client) getLatestJobOperatorVersion(ctx context.Context, token string) (string, bool) {
	result, _ := c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/application/" + jobApplicationID,
		token:        token,
		errorMessage: "Failed getting Job application info",
		timeout:      defaultTimeout,
	})
	if !result.Success {
		c.logger.Error("Failed getting Job application info")
		return "", false
	}

	if versions, ok := result.Message["versions"].([]interface{}); ok && len(versions) > 0 {
		if version, ok := versions[0].(string); ok {
			return version, true
		}
	}

	c.logger.Warn("No versions returned for Job application info - no operator?")
	return "", true
}

// StartJobInstance instantiates a Job, based on the latest Job application
// version known to the API.
func (c *Client) StartJobInstance(ctx context.Context, token string, spec InstanceSpec) Result {
	if spec.ProjectID == "" {
		return failure("Failed to start instance (no project ID)")
	}
	if spec.Name == "" {
		return failure("Failed to start instance (no name)")
	}

	// Without a Job operator the DM cannot run Jobs.
	version, ok := c.getLatestJobOperatorVersion(ctx, token)
	if !ok {
		return failure("Failed getting Job operator version")
	}
	if version == "" {
		return failure("No Job operator installed")
	}

	specification, err := json.Marshal(spec.Specification)
	if err != nil {
		return failure("Failed to start instance (bad specification: %v)", err)
	}

	formData := map[string]string{
		"application_id":      jobApplicationID,
		"application_version": version,
		"as_name":             spec.Name,
		"project_id":          spec.ProjectID,
		"specification":       string(specification),
	}
	if spec.Debug != "" {
		formData["debug"] = spec.Debug
	}
	if spec.CallbackURL != "" {
		formData["callback_url"] = spec.CallbackURL
		if spec.CallbackContext != "" {
			formData["callback_context"] = spec.CallbackContext
		}
	}

	c.logger.Info("Starting job instance",
		zap.String("project_id", spec.ProjectID),
		zap.String("name", spec.Name),
		zap.String("application_version", version))

	result, _ := c.request(ctx, requestSpec{
		method:        http.MethodPost,
		path:          "/instance",
		token:         token,
		formData:      formData,
		expectedCodes: []int{http.StatusCreated},
		errorMessage:  "Failed to start instance",
		timeout:       defaultTimeout,
	})
	return result
}

// GetInstance gets information about an Application/Job instance.
func (c *Client) GetInstance(ctx context.Context, token, instanceID string) Result {
	if instanceID == "" {
		return failure("Failed to get instance (no instance ID)")
	}

	result, _ := c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/instance/" + instanceID,
		token:        token,
		errorMessage: "Failed to get instance",
		timeout:      defaultTimeout,
	})
	return result
}

// GetProjectInstances gets information about all instances in a project.
func (c *Client) GetProjectInstances(ctx context.Context, token, projectID string) Result {
	if projectID == "" {
		return failure("Failed to get project instances (no project ID)")
	}

	result, _ := c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/instance",
		token:        token,
		queryParams:  map[string]string{"project_id": projectID},
		errorMessage: "Failed to get project instances",
		timeout:      defaultTimeout,
	})
	return result
}

// DeleteInstance deletes an Application/Job instance.
func (c *Client) DeleteInstance(ctx context.Context, token, instanceID string) Result {
	if instanceID == "" {
		return failure("Failed to delete instance (no instance ID)")
	}

	c.logger.Info("Deleting instance", zap.String("instance_id", instanceID))

	result, _ := c.request(ctx, requestSpec{
		method:       http.MethodDelete,
		path:         "/instance/" + instanceID,
		token:        token,
		errorMessage: "Failed to delete instance",
		timeout:      defaultTimeout,
	})
	return result
}

// GetTask gets information about a specific Task. Events prior to
// eventPriorOrdinal are excluded and eventLimit caps the number returned;
// zero values leave the server defaults in place.
func (c *Client) GetTask(ctx context.Context, token, taskID string, eventPriorOrdinal, eventLimit int) Result {
	if taskID == "" {
		return failure("Failed to get task (no task ID)")
	}

	queryParams := map[string]string{}
	if eventPriorOrdinal > 0 {
		queryParams["event_prior_ordinal"] = strconv.Itoa(eventPriorOrdinal)
	}
	if eventLimit > 0 {
		queryParams["event_limit"] = strconv.Itoa(eventLimit)
	}

	result, _ := c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/task/" + taskID,
		token:        token,
		queryParams:  queryParams,
		errorMessage: "Failed to get task",
		timeout:      defaultTimeout,
	})
	return result
}

// GetAvailableJobs gets a summary list of available Jobs.
func (c *Client) GetAvailableJobs(ctx context.Context, token string) Result {
	result, _ := c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/job",
		token:        token,
		errorMessage: "Failed to get available jobs",
		timeout:      defaultTimeout,
	})
	return result
}

// GetJob gets detailed information about a specific Job.
func (c *Client) GetJob(ctx context.Context, token string, jobID int) Result {
	if jobID <= 0 {
		return failure("Failed to get job (bad job ID)")
	}

	result, _ := c.request(ctx, requestSpec{
		method:       http.MethodGet,
		path:         "/job/" + strconv.Itoa(jobID),
		token:        token,
		errorMessage: "Failed to get job",
		timeout:      defaultTimeout,
	})
	return result
}
