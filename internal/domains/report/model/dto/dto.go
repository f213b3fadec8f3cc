package dto

// ReportFile is a rendered CSV export ready to be streamed to the client.
// ArchiveURL is set when the file was also copied to object storage.
type ReportFile struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	ArchiveURL  string `json:"archive_url,omitempty"`
}
