package malamute

/*------------------------------------------------------------------
 *
 * Purpose:	Save decode activity to a log file.
 *
 * Description:	Rather than a free-form text dump, one CSV row is
 *		written per decode attempt so the log stays easy to
 *		read and to post-process.
 *
 *		There are two alternatives:
 *
 *		--log-file logfile	Specify full file path.
 *
 *		--log-dir logdir	Daily names will be created here.
 *
 *		Use one or the other but not both.
 *
 *----------------------------------------------------------------*/

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lestrrat-go/strftime"
)

var activityLogHeader = []string{"utc_time", "input", "status", "detail", "seq", "payload_bytes"}

// ActivityLog appends one CSV row per decode attempt.  The file is
// kept open; we don't open and close for every new item.
type ActivityLog struct {
	file *os.File
	csv  *csv.Writer
}

// OpenActivityLog opens (or creates) a log at an explicit path.
func OpenActivityLog(path string) (*ActivityLog, error) {

	var f, openErr = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // User-supplied log path from CLI
	if openErr != nil {
		return nil, fmt.Errorf("opening log file: %w", openErr)
	}

	var l = &ActivityLog{file: f, csv: csv.NewWriter(f)}

	var headerErr = l.writeHeaderIfNew()
	if headerErr != nil {
		f.Close()
		return nil, headerErr
	}

	return l, nil
}

// OpenDailyActivityLog opens a log with an automatic daily name
// inside dir, creating dir first if needed.  Parent directories must
// already exist; this is not mkdir -p.
func OpenDailyActivityLog(dir string, now time.Time) (*ActivityLog, error) {

	var stat, statErr = os.Stat(dir)
	if statErr == nil {
		if !stat.IsDir() {
			return nil, fmt.Errorf("log location %q is not a directory", dir)
		}
	} else {
		var mkdirErr = os.Mkdir(dir, 0755)
		if mkdirErr != nil {
			return nil, fmt.Errorf("creating log location %q: %w", dir, mkdirErr)
		}
	}

	var name, strftimeErr = strftime.Format("%Y-%m-%d.log", now.UTC())
	if strftimeErr != nil {
		return nil, strftimeErr
	}

	return OpenActivityLog(filepath.Join(dir, name))
}

func (l *ActivityLog) writeHeaderIfNew() error {

	var stat, statErr = l.file.Stat()
	if statErr != nil {
		return statErr
	}

	if stat.Size() != 0 {
		return nil
	}

	var writeErr = l.csv.Write(activityLogHeader)
	if writeErr != nil {
		return writeErr
	}
	l.csv.Flush()

	return l.csv.Error()
}

// Record appends one row.  res may be nil when decodeErr is set.
func (l *ActivityLog) Record(now time.Time, inputFile string, res *DecodeResult, decodeErr error) error {

	var status = "ok"
	var detail = ""
	var seq = ""
	var payloadBytes = ""

	if decodeErr != nil {
		status = "error"
		detail = decodeErr.Error()
	} else if res != nil {
		seq = strconv.Itoa(int(res.Seq))
		payloadBytes = strconv.Itoa(res.PayloadBytes)
	}

	var writeErr = l.csv.Write([]string{
		now.UTC().Format(time.RFC3339),
		inputFile,
		status,
		detail,
		seq,
		payloadBytes,
	})
	if writeErr != nil {
		return writeErr
	}

	l.csv.Flush()

	return l.csv.Error()
}

// Close flushes and closes the underlying file.
func (l *ActivityLog) Close() error {
	l.csv.Flush()

	var flushErr = l.csv.Error()
	var closeErr = l.file.Close()

	if flushErr != nil {
		return flushErr
	}

	return closeErr
}
