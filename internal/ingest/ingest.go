package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"vision-batch-service/internal/domain/analysis"
)

var (
	ErrInvalidMediaType   = errors.New("only image files are allowed")
	ErrFileTooLarge       = errors.New("file too large")
	ErrTooManyFiles       = errors.New("too many files")
	ErrMalformedMultipart = errors.New("invalid image upload")
)

// Limits bounds a single upload. Memory use is capped by
// MaxFileBytes * MaxFiles, since file contents are buffered.
type Limits struct {
	MaxFileBytes int64
	MaxFiles     int
}

// Source is the upload transport: either a body that was already received
// in full, or a live byte stream. Both feed one parsing path; a buffered
// body must not be treated as a truncated stream.
type Source struct {
	buffered []byte
	stream   io.Reader
}

func Buffered(body []byte) Source {
	return Source{buffered: body}
}

func Streamed(r io.Reader) Source {
	return Source{stream: r}
}

func (s Source) reader() io.Reader {
	if s.stream != nil {
		return s.stream
	}
	return bytes.NewReader(s.buffered)
}

// Ingest consumes a multipart body in a single sequential pass and returns
// the validated files in their declared order.
//
// Any limit or media-type violation is terminal: the first error wins,
// remaining parts are drained so the transport is fully consumed, and no
// partial file list is returned. Zero files is a valid empty result; the
// caller decides whether an empty batch is an error.
func Ingest(src Source, contentType string, limits Limits) ([]analysis.UploadedFile, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: bad content type: %v", ErrMalformedMultipart, err)
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		return nil, fmt.Errorf("%w: content type %q is not multipart", ErrMalformedMultipart, mediaType)
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, fmt.Errorf("%w: missing multipart boundary", ErrMalformedMultipart)
	}

	mr := multipart.NewReader(src.reader(), boundary)

	var files []analysis.UploadedFile
	var firstErr error

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			if firstErr != nil {
				return nil, firstErr
			}
			return nil, fmt.Errorf("%w: %v", ErrMalformedMultipart, err)
		}

		if firstErr != nil {
			drain(part)
			continue
		}

		// Plain form fields (no filename) are not uploads.
		if part.FileName() == "" {
			drain(part)
			continue
		}

		partType := part.Header.Get("Content-Type")
		if !strings.HasPrefix(partType, "image/") {
			firstErr = fmt.Errorf("%w: field %q has media type %q", ErrInvalidMediaType, part.FormName(), partType)
			drain(part)
			continue
		}

		if limits.MaxFiles > 0 && len(files) >= limits.MaxFiles {
			firstErr = fmt.Errorf("%w: at most %d files per request", ErrTooManyFiles, limits.MaxFiles)
			drain(part)
			continue
		}

		content, err := readBounded(part, limits.MaxFileBytes)
		if err != nil {
			firstErr = err
			drain(part)
			continue
		}

		files = append(files, analysis.UploadedFile{
			FieldName:    part.FormName(),
			OriginalName: part.FileName(),
			MediaType:    partType,
			Content:      content,
		})
		part.Close()
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return files, nil
}

// readBounded buffers one part's body, failing as soon as the stream
// exceeds max rather than after slurping the whole part.
func readBounded(part *multipart.Part, max int64) ([]byte, error) {
	var src io.Reader = part
	if max > 0 {
		src = io.LimitReader(part, max+1)
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, src)
	if err != nil {
		return nil, fmt.Errorf("%w: reading part %q: %v", ErrMalformedMultipart, part.FormName(), err)
	}
	if max > 0 && n > max {
		return nil, fmt.Errorf("%w: max %d bytes per file", ErrFileTooLarge, max)
	}
	return buf.Bytes(), nil
}

func drain(part *multipart.Part) {
	io.Copy(io.Discard, part)
	part.Close()
}
