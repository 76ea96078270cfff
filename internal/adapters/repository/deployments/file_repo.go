package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/zkmochi/mochi-cli/internal/domain"
	"github.com/zkmochi/mochi-cli/internal/domain/config"
	"github.com/zkmochi/mochi-cli/internal/domain/models"
	"github.com/zkmochi/mochi-cli/internal/usecase"
)

const DeploymentsFile = "deployments.json"

// FileRepository stores deployment records in a json file under the data directory
type FileRepository struct {
	dataDir     string
	mu          sync.RWMutex
	deployments map[string]*models.DeploymentRecord
}

// NewFileRepository creates a repository and loads any existing records
func NewFileRepository(cfg *config.RuntimeConfig) (*FileRepository, error) {
	m := &FileRepository{
		dataDir:     cfg.DataDir,
		deployments: make(map[string]*models.DeploymentRecord),
	}

	if err := m.load(); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	return m, nil
}

// load reads the registry file, a missing file is an empty registry
func (m *FileRepository) load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(m.dataDir, DeploymentsFile))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &m.deployments); err != nil {
		return fmt.Errorf("failed to parse %s: %w", DeploymentsFile, err)
	}
	if m.deployments == nil {
		m.deployments = make(map[string]*models.DeploymentRecord)
	}
	return nil
}

// save writes the registry atomically through a temp file
func (m *FileRepository) save() error {
	if err := os.MkdirAll(m.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", m.dataDir, err)
	}

	path := filepath.Join(m.dataDir, DeploymentsFile)
	data, err := json.MarshalIndent(m.deployments, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

// GetDeployment retrieves a deployment by ID
func (m *FileRepository) GetDeployment(ctx context.Context, id string) (*models.DeploymentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, exists := m.deployments[id]
	if !exists {
		return nil, domain.ErrNotFound
	}

	clone := *rec
	return &clone, nil
}

// ListDeployments returns every record sorted by ID
func (m *FileRepository) ListDeployments(ctx context.Context) ([]*models.DeploymentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(m.deployments))
	out := make([]*models.DeploymentRecord, 0, len(ids))
	for _, id := range ids {
		clone := *m.deployments[id]
		out = append(out, &clone)
	}
	return out, nil
}

// SaveDeployment inserts or replaces a record and persists the registry
func (m *FileRepository) SaveDeployment(ctx context.Context, record *models.DeploymentRecord) error {
	if record.ID == "" {
		record.ID = models.RecordID(record.Network, record.ContractName)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := m.deployments[record.ID]; ok && record.CreatedAt.IsZero() {
		record.CreatedAt = existing.CreatedAt
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	previous, had := m.deployments[record.ID]
	clone := *record
	m.deployments[record.ID] = &clone

	if err := m.save(); err != nil {
		if had {
			m.deployments[record.ID] = previous
		} else {
			delete(m.deployments, record.ID)
		}
		return fmt.Errorf("failed to save deployments: %w", err)
	}
	return nil
}

var _ usecase.DeploymentRepository = (*FileRepository)(nil)
