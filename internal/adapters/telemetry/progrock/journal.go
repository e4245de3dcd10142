package progrock

import (
	"encoding/json"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/chargeup/internal/core/domain"
	"go.trai.ch/chargeup/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RunJournal = (*Journal)(nil)

// JournalFilename is the name of the journal file inside the state directory.
const JournalFilename = "last-run.journal"

// DefaultJournalPath returns the journal location under the user cache directory.
func DefaultJournalPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Join(domain.ErrJournalReadFailed, zerr.Wrap(err, "cannot locate cache directory"))
	}
	return filepath.Join(dir, "chargeup", JournalFilename), nil
}

// journalWriter opens the progrock journal on the first vertex update, so
// commands that run nothing leave the previous run's journal in place.
// Updates before that are held back and written once the file exists.
type journalWriter struct {
	path string

	mu      sync.Mutex
	w       progrock.Writer
	pending []*progrock.StatusUpdate
}

func newJournalWriter(path string) *journalWriter {
	return &journalWriter{path: path}
}

func (j *journalWriter) WriteStatus(ev *progrock.StatusUpdate) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.w == nil {
		if len(ev.GetVertexes()) == 0 && len(ev.GetLogs()) == 0 {
			j.pending = append(j.pending, ev)
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(j.path), 0o750); err != nil {
			return zerr.Wrap(err, "cannot create journal directory")
		}
		w, err := progrock.CreateJournal(j.path)
		if err != nil {
			return zerr.Wrap(err, "cannot create journal")
		}
		j.w = w
		for _, p := range j.pending {
			if err := j.w.WriteStatus(p); err != nil {
				return err
			}
		}
		j.pending = nil
	}
	return j.w.WriteStatus(ev)
}

func (j *journalWriter) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.w == nil {
		return nil
	}
	return j.w.Close()
}

// Journal replays the progrock journal written by the last run.
type Journal struct {
	path string
}

// NewJournal creates a Journal reading the file at path.
func NewJournal(path string) *Journal {
	return &Journal{path: filepath.Clean(path)}
}

// Steps returns the vertices of the last run with their output.
func (j *Journal) Steps() ([]domain.StepLog, error) {
	f, err := os.Open(j.path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, readError(zerr.Wrap(err, "cannot open journal"), j.path)
	}
	defer func() { _ = f.Close() }()

	var (
		order  []string
		byID   = make(map[string]*domain.StepLog)
		output = make(map[string]*strings.Builder)
	)
	step := func(id string) *domain.StepLog {
		if l, ok := byID[id]; ok {
			return l
		}
		l := &domain.StepLog{}
		byID[id] = l
		output[id] = &strings.Builder{}
		order = append(order, id)
		return l
	}

	dec := json.NewDecoder(f)
	for {
		ev := &progrock.StatusUpdate{}
		err := dec.Decode(ev)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			// A run killed mid-write leaves a truncated last line.
			break
		}
		if err != nil {
			return nil, readError(zerr.Wrap(err, "cannot decode journal"), j.path)
		}

		for _, v := range ev.GetVertexes() {
			l := step(v.GetId())
			l.Name = v.GetName()
			l.Cached = v.GetCached()
			l.Err = v.GetError()
			if v.GetStarted() != nil {
				l.Started = v.GetStarted().AsTime()
			}
			if v.GetCompleted() != nil {
				l.Completed = v.GetCompleted().AsTime()
			}
		}
		for _, log := range ev.GetLogs() {
			step(log.GetVertex())
			output[log.GetVertex()].Write(log.GetData())
		}
	}

	steps := make([]domain.StepLog, 0, len(order))
	for _, id := range order {
		l := byID[id]
		if l.Name == "" {
			continue
		}
		l.Output = output[id].String()
		steps = append(steps, *l)
	}
	return steps, nil
}

func readError(cause error, path string) error {
	return errors.Join(domain.ErrJournalReadFailed, zerr.With(cause, "path", path))
}
