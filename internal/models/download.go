package models

// FileMapping associates one remote object key with the local path, relative
// to the project root, it is written to.
type FileMapping struct {
	RemoteKey string `json:"remote_key"`
	LocalPath string `json:"local_path"`
}

type ItemStatus string

const (
	StatusDone        ItemStatus = "done"
	StatusFetchFailed ItemStatus = "fetch_failed"
	StatusWriteFailed ItemStatus = "write_failed"
)

type DownloadItem struct {
	RemoteKey    string     `json:"remote_key"`
	LocalPath    string     `json:"local_path"`
	FullPath     string     `json:"full_path"`
	URL          string     `json:"url"`
	Status       ItemStatus `json:"status"`
	HTTPStatus   int        `json:"http_status,omitempty"`
	BytesWritten int64      `json:"bytes_written"`
	Error        string     `json:"error,omitempty"`
}

func (i DownloadItem) Succeeded() bool {
	return i.Status == StatusDone
}

type DownloadResult struct {
	BucketName       string         `json:"bucket_name"`
	RootDir          string         `json:"root_dir"`
	Items            []DownloadItem `json:"items"`
	TotalFiles       int            `json:"total_files"`
	Succeeded        int            `json:"succeeded"`
	Failed           int            `json:"failed"`
	TotalSizeBytes   int64          `json:"total_size_bytes"`
	TotalSizeHuman   string         `json:"total_size_human"`
	OperationTime    string         `json:"operation_time"`
	DownloadDuration string         `json:"download_duration"`

	errs error
}

// Err returns the per-item failures combined into one error, or nil when
// every item succeeded.
func (r *DownloadResult) Err() error {
	return r.errs
}

func (r *DownloadResult) SetErr(err error) {
	r.errs = err
}

type PlanItem struct {
	RemoteKey string `json:"remote_key"`
	URL       string `json:"url"`
	FullPath  string `json:"full_path"`
	Exists    bool   `json:"exists"`
}

type PlanResult struct {
	BucketName string     `json:"bucket_name"`
	RootDir    string     `json:"root_dir"`
	Items      []PlanItem `json:"items"`
	TotalFiles int        `json:"total_files"`
}
