package models

import "time"

// ObjectInfo is the metadata of a remote object as reported by a HEAD request.
type ObjectInfo struct {
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type,omitempty"`
	ETag         string    `json:"etag,omitempty"`
	LastModified time.Time `json:"last_modified,omitempty"`
}

type CheckItem struct {
	RemoteKey  string      `json:"remote_key"`
	URL        string      `json:"url"`
	Available  bool        `json:"available"`
	HTTPStatus int         `json:"http_status,omitempty"`
	Object     *ObjectInfo `json:"object,omitempty"`
	Error      string      `json:"error,omitempty"`
}

type CheckResult struct {
	BucketName     string      `json:"bucket_name"`
	Region         string      `json:"region"`
	Items          []CheckItem `json:"items"`
	Available      int         `json:"available"`
	Missing        int         `json:"missing"`
	TotalSizeBytes int64       `json:"total_size_bytes"`
	TotalSizeHuman string      `json:"total_size_human"`
	OperationTime  string      `json:"operation_time"`
	APIEndpoint    string      `json:"api_endpoint,omitempty"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`
}
