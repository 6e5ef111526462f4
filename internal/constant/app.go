package constant

import "time"

const (
	QUERY_TIMEOUT_DURATION = 5 * time.Second
)

const (
	// Only PDF uploads are accepted, capped at 10MiB.
	PDF_MIME_TYPE       = "application/pdf"
	MAX_PDF_UPLOAD_SIZE = int64(10 * 1024 * 1024)

	// Comments without an explicit page land on the first page.
	DEFAULT_COMMENT_PAGE = uint(1)
)
