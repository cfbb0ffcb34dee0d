package dmapi

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// ListProjectFiles gets the list of project files on a path.
func (c *Client) ListProjectFiles(ctx context.Context, token, projectID, projectPath string, includeHidden bool) Result {
	if projectID == "" {
		return failure("Failed to list project files (no project ID)")
	}
	if projectPath == "" {
		projectPath = "/"
	}

	result, _ := c.request(ctx, requestSpec{
		method: http.MethodGet,
		path:   "/file",
		token:  token,
		queryParams: map[string]string{
			"project_id":     projectID,
			"path":           projectPath,
			"include_hidden": strconv.FormatBool(includeHidden),
		},
		errorMessage: "Failed to list project files",
		timeout:      listTimeout,
	})
	return result
}

// UploadUnmanagedProjectFiles puts a list of files into a project on an
// optional path. Files already present on the path are skipped unless
// force is set; immutable server files cannot be over-written and will
// result in an error.
func (c *Client) UploadUnmanagedProjectFiles(ctx context.Context, token, projectID string, projectFiles []string, projectPath string, force bool) Result {
	if projectID == "" {
		return failure("Failed putting files (no project ID)")
	}
	if len(projectFiles) == 0 {
		return failure("Failed putting files (no files)")
	}
	if projectPath == "" {
		projectPath = "/"
	}

	// Unless forcing, collect the names of every file on the path so
	// files that appear to exist can be skipped.
	existing := map[string]bool{}
	if force {
		c.logger.Warn("Putting files (force=true)", zap.String("project_id", projectID))
	} else {
		result, resp := c.request(ctx, requestSpec{
			method: http.MethodGet,
			path:   "/file",
			token:  token,
			queryParams: map[string]string{
				"project_id": projectID,
				"path":       projectPath,
			},
			expectedCodes: []int{http.StatusOK, http.StatusNotFound},
			errorMessage:  "Failed getting existing project files",
			timeout:       listTimeout,
		})
		if !result.Success {
			return result
		}
		if resp.StatusCode == http.StatusOK {
			if files, ok := result.Message["files"].([]interface{}); ok {
				for _, item := range files {
					if entry, ok := item.(map[string]interface{}); ok {
						if name, ok := entry["file_name"].(string); ok {
							existing[name] = true
						}
					}
				}
			}
		}
	}

	for _, srcFile := range projectFiles {
		// Source file has to exist whether it ends up being sent or not.
		if _, err := os.Stat(srcFile); err != nil {
			return failure("No such file (%s)", srcFile)
		}
		if existing[filepath.Base(srcFile)] {
			continue
		}
		if result := c.putUnmanagedProjectFile(ctx, token, projectID, srcFile, projectPath); !result.Success {
			return result
		}
	}

	return Result{Success: true, Message: map[string]interface{}{}}
}

// putUnmanagedProjectFile puts an individual file into a project.
func (c *Client) putUnmanagedProjectFile(ctx context.Context, token, projectID, projectFile, projectPath string) Result {
	result, _ := c.request(ctx, requestSpec{
		method:        http.MethodPut,
		path:          "/project/" + projectID + "/file",
		token:         token,
		formData:      map[string]string{"path": projectPath},
		files:         map[string]string{"file": projectFile},
		expectedCodes: []int{http.StatusCreated},
		errorMessage:  "Failed putting file " + projectPath + "/" + projectFile,
		timeout:       uploadTimeout,
	})
	if !result.Success {
		c.logger.Warn("Failed putting file",
			zap.String("file", projectFile),
			zap.String("path", projectPath),
			zap.String("project_id", projectID))
	}
	return result
}

// DeleteUnmanagedProjectFiles deletes unmanaged project files on a path.
func (c *Client) DeleteUnmanagedProjectFiles(ctx context.Context, token, projectID string, projectFiles []string, projectPath string) Result {
	if projectID == "" {
		return failure("Failed to delete project files (no project ID)")
	}
	if projectPath == "" {
		projectPath = "/"
	}

	for _, fileToDelete := range projectFiles {
		result, _ := c.request(ctx, requestSpec{
			method: http.MethodDelete,
			path:   "/file",
			token:  token,
			queryParams: map[string]string{
				"project_id": projectID,
				"path":       projectPath,
				"file":       fileToDelete,
			},
			expectedCodes: []int{http.StatusNoContent},
			errorMessage:  "Failed to delete project file",
			timeout:       defaultTimeout,
		})
		if !result.Success {
			return result
		}
	}

	return Result{Success: true, Message: map[string]interface{}{}}
}

// DownloadUnmanagedProjectFile gets a single unmanaged file from a project
// path, saving it to localFile.
func (c *Client) DownloadUnmanagedProjectFile(ctx context.Context, token, projectID, projectFile, localFile, projectPath string) Result {
	if projectID == "" || projectFile == "" || localFile == "" {
		return failure("Failed to get file (missing argument)")
	}
	if projectPath == "" {
		projectPath = "/"
	}

	result, resp := c.request(ctx, requestSpec{
		method: http.MethodGet,
		path:   "/project/" + projectID + "/file",
		token:  token,
		queryParams: map[string]string{
			"path": projectPath,
			"file": projectFile,
		},
		errorMessage: "Failed to get file",
		timeout:      listTimeout,
	})
	if !result.Success {
		return result
	}

	if err := os.WriteFile(localFile, resp.Body, 0o644); err != nil {
		c.logger.Error("Failed writing local file", zap.Error(err), zap.String("local_file", localFile))
		return failure("Failed writing local file (%v)", err)
	}
	return result
}
