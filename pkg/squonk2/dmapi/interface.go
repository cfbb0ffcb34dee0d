package dmapi

import "context"

// DataManagerClient defines the interface for Data Manager API operations
type DataManagerClient interface {
	// Ping ensures the server is responding
	Ping(ctx context.Context, token string) Result

	// GetVersion returns the underlying service version
	GetVersion(ctx context.Context, token string) Result

	// CreateProject creates a project using an organisation, unit and product
	CreateProject(ctx context.Context, token string, spec ProjectSpec) Result

	// DeleteProject deletes a project
	DeleteProject(ctx context.Context, token, projectID string) Result

	// GetAvailableProjects gets all projects available to you
	GetAvailableProjects(ctx context.Context, token string) Result

	// GetProject gets detailed information about a specific project
	GetProject(ctx context.Context, token, projectID string) Result

	// ListProjectFiles gets the list of project files on a path
	ListProjectFiles(ctx context.Context, token, projectID, projectPath string, includeHidden bool) Result

	// UploadUnmanagedProjectFiles puts files into a project on a path
	UploadUnmanagedProjectFiles(ctx context.Context, token, projectID string, projectFiles []string, projectPath string, force bool) Result

	// DeleteUnmanagedProjectFiles deletes project files on a path
	DeleteUnmanagedProjectFiles(ctx context.Context, token, projectID string, projectFiles []string, projectPath string) Result

	// DownloadUnmanagedProjectFile saves a single project file locally
	DownloadUnmanagedProjectFile(ctx context.Context, token, projectID, projectFile, localFile, projectPath string) Result

	// StartJobInstance instantiates a Job
	StartJobInstance(ctx context.Context, token string, spec InstanceSpec) Result

	// GetInstance gets information about an Application/Job instance
	GetInstance(ctx context.Context, token, instanceID string) Result

	// GetProjectInstances gets all instances in a project
	GetProjectInstances(ctx context.Context, token, projectID string) Result

	// DeleteInstance deletes an Application/Job instance
	DeleteInstance(ctx context.Context, token, instanceID string) Result

	// GetTask gets information about a specific Task
	GetTask(ctx context.Context, token, taskID string, eventPriorOrdinal, eventLimit int) Result

	// GetAvailableJobs gets a summary list of available Jobs
	GetAvailableJobs(ctx context.Context, token string) Result

	// GetJob gets detailed information about a specific Job
	GetJob(ctx context.Context, token string, jobID int) Result
}

var _ DataManagerClient = (*Client)(nil)
