// Package state persists the table of in-flight continuation sessions.
// The store is a single JSON document mapping tool name to the most recently
// launched process. Hook invocations are separate OS processes, so durability
// rests on atomic replace-on-write, not on in-process locking.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StateFile is the name of the session state document under the data dir.
const StateFile = "session_state.json"

// SessionInfo records the continuation process most recently launched for a
// tool. At most one entry exists per tool; writing replaces the prior entry.
type SessionInfo struct {
	Tool             string    `json:"tool"`
	PID              int       `json:"pid"`
	StartedAt        time.Time `json:"started_at"`
	WorkingDirectory string    `json:"working_directory"`
}

// Store reads and writes the session state file.
type Store struct {
	path string
}

// NewStore returns a store backed by dir/session_state.json.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, StateFile)}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Read loads the session table. A missing file is an empty table. A malformed
// file is logged and treated as empty; Read never fails.
func (s *Store) Read() map[string]SessionInfo {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]SessionInfo{}
		}
		// The file may be mid-replace by a concurrent hook; retry once.
		data, err = os.ReadFile(s.path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: reading session state: %v\n", err)
			return map[string]SessionInfo{}
		}
	}

	var sessions map[string]SessionInfo
	if err := json.Unmarshal(data, &sessions); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: malformed session state file %s: %v\n", s.path, err)
		return map[string]SessionInfo{}
	}
	if sessions == nil {
		sessions = map[string]SessionInfo{}
	}
	return sessions
}

// Write replaces the entry for tool and persists the full table. The document
// is written to a temporary file and renamed into place so a concurrent
// reader never observes a partial write.
func (s *Store) Write(tool string, info SessionInfo) error {
	sessions := s.Read()
	sessions[tool] = info

	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session_state-*")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing session state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing session state: %w", err)
	}
	return nil
}

// Alive reports whether pid refers to a running process we may signal.
func Alive(pid int) bool {
	return alive(pid)
}

// KillOldSession terminates the tracked process for tool, if any. It returns
// true when a termination was attempted and false when no session was
// tracked. A pid that is already gone, or that we lack permission to signal,
// is logged and treated as a no-op; KillOldSession never fails.
func (s *Store) KillOldSession(tool string) bool {
	sessions := s.Read()
	info, ok := sessions[tool]
	if !ok {
		return false
	}

	if !alive(info.PID) {
		fmt.Fprintf(os.Stderr, "Warning: old %s session (pid %d) already exited\n", tool, info.PID)
		return true
	}

	if err := terminate(info.PID); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not terminate old %s session (pid %d): %v\n",
			tool, info.PID, err)
	}
	return true
}
