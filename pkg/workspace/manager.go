package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const DefaultWorkspaceName = "default"

type WorkspacesFile struct {
	Workspaces []Details `json:"workspaces,omitempty"`
}

type Details struct {
	Name string `json:"name,omitempty"`
	Root string `json:"root,omitempty"`
}

func (d Details) Open() (*Workspace, error) {
	return Open(d.Name, d.Root)
}

var DefaultManager = Manager{
	Path: func() string {
		home, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}
		return filepath.Join(home, ".ovprep", "workspaces.json")
	}(),
}

// Manager persists named workspaces, the same way container tooling keeps its
// registry list.
type Manager struct {
	Path       string
	workspaces WorkspacesFile
}

func (m *Manager) Set(item Details) error {
	root, err := filepath.Abs(item.Root)
	if err != nil {
		return fmt.Errorf("invalid root: %s", item.Root)
	}
	item.Root = root

	if err := m.load(); err != nil {
		return err
	}
	var exists bool
	for i, ws := range m.workspaces.Workspaces {
		if ws.Name == item.Name {
			m.workspaces.Workspaces[i] = item
			exists = true
			break
		}
	}
	if !exists {
		m.workspaces.Workspaces = append(m.workspaces.Workspaces, item)
	}
	return m.save()
}

// Get resolves a workspace by name. The default workspace falls back to the
// current directory when it was never registered.
func (m *Manager) Get(name string) (Details, error) {
	if err := m.load(); err != nil {
		return Details{}, err
	}
	for _, ws := range m.workspaces.Workspaces {
		if ws.Name == name || ws.Root == name {
			return ws, nil
		}
	}
	if name == DefaultWorkspaceName {
		cwd, err := os.Getwd()
		if err != nil {
			return Details{}, err
		}
		return Details{Name: DefaultWorkspaceName, Root: cwd}, nil
	}
	return Details{}, fmt.Errorf("workspace %s not found", name)
}

func (m *Manager) Remove(name string) error {
	if err := m.load(); err != nil {
		return err
	}
	for i, ws := range m.workspaces.Workspaces {
		if ws.Name == name {
			m.workspaces.Workspaces = append(m.workspaces.Workspaces[:i], m.workspaces.Workspaces[i+1:]...)
			return m.save()
		}
	}
	return fmt.Errorf("workspace %s not found", name)
}

func (m *Manager) List() []Details {
	if err := m.load(); err != nil {
		return []Details{}
	}
	return m.workspaces.Workspaces
}

func (m *Manager) load() error {
	content, err := os.ReadFile(m.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(m.Path), 0o755); err != nil {
			return err
		}
		content = []byte("{}")
	}
	return json.Unmarshal(content, &m.workspaces)
}

func (m *Manager) save() error {
	content, err := json.MarshalIndent(m.workspaces, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.Path, content, 0o644)
}
