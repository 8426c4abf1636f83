package artifacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/tvk-deploy/internal/domain"
	"github.com/trebuchet-org/tvk-deploy/internal/domain/config"
)

// Loader discovers compiled artifacts produced by Hardhat or Foundry
type Loader struct {
	projectRoot string
	dirs        []string

	once     sync.Once
	index    map[string][]*entry // key: contract name
	indexErr error
}

// entry is an indexed artifact whose ABI and bytecode are decoded on demand
type entry struct {
	ref      domain.ArtifactRef
	abi      json.RawMessage
	bytecode string
}

// rawArtifact covers both the Hardhat and Foundry artifact layouts
type rawArtifact struct {
	ContractName string          `json:"contractName"` // Hardhat
	SourceName   string          `json:"sourceName"`   // Hardhat
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"` // Hardhat: "0x..", Foundry: {"object": "0x.."}
	Metadata     json.RawMessage `json:"metadata"` // Foundry: object carrying the compilation target
}

type foundryMetadata struct {
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// NewLoader creates a loader searching artifacts/ and the Foundry out directory
func NewLoader(cfg *config.RuntimeConfig) *Loader {
	outDir := cfg.FoundryConfig.OutDir()
	if outDir == "" {
		outDir = "out"
	}
	return NewLoaderForDirs(cfg.ProjectRoot, "artifacts", outDir)
}

// NewLoaderForDirs creates a loader over explicit directories relative to projectRoot
func NewLoaderForDirs(projectRoot string, dirs ...string) *Loader {
	return &Loader{
		projectRoot: projectRoot,
		dirs:        dirs,
	}
}

// LoadArtifact resolves a contract by "Name" or "source:Name" and decodes it
func (l *Loader) LoadArtifact(key string) (*domain.Artifact, error) {
	l.once.Do(func() {
		l.indexErr = l.buildIndex()
	})
	if l.indexErr != nil {
		return nil, l.indexErr
	}

	matches := l.find(key)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s (searched %s; compile the project first)",
			domain.ErrContractNotFound, key, strings.Join(l.dirs, ", "))
	case 1:
		return decode(matches[0])
	default:
		refs := make([]domain.ArtifactRef, 0, len(matches))
		for _, m := range matches {
			refs = append(refs, m.ref)
		}
		return nil, domain.AmbiguousContractErr{Name: key, Matches: refs}
	}
}

// find returns all entries matching a bare name or a source:name key
func (l *Loader) find(key string) []*entry {
	source, name := "", key
	if idx := strings.LastIndex(key, ":"); idx != -1 {
		source, name = key[:idx], key[idx+1:]
	}

	var matches []*entry
	seen := make(map[string]bool)
	for _, e := range l.index[name] {
		if source != "" && e.ref.SourceName != source && !strings.HasSuffix(e.ref.SourceName, "/"+source) {
			continue
		}
		// Hardhat and Foundry may both have built the same source
		id := e.ref.SourceName + ":" + e.bytecode
		if seen[id] {
			continue
		}
		seen[id] = true
		matches = append(matches, e)
	}
	return matches
}

func (l *Loader) buildIndex() error {
	l.index = make(map[string][]*entry)

	for _, dir := range l.dirs {
		root := dir
		if !filepath.IsAbs(root) {
			root = filepath.Join(l.projectRoot, dir)
		}
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}

		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				// Skip build info directories
				if info.Name() == "build-info" {
					return filepath.SkipDir
				}
				return nil
			}

			if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
				return nil
			}

			return l.processArtifact(path)
		})
		if err != nil {
			return fmt.Errorf("failed to index artifacts in %s: %w", root, err)
		}
	}

	return nil
}

// processArtifact indexes a single artifact file
func (l *Loader) processArtifact(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // artifact path from directory walk
	if err != nil {
		return err
	}

	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil // Skip files that are not artifacts
	}
	if len(raw.ABI) == 0 || len(raw.Bytecode) == 0 {
		return nil
	}

	bytecode, ok := parseBytecode(raw.Bytecode)
	if !ok {
		return nil
	}

	name, source := raw.ContractName, raw.SourceName
	if name == "" {
		name, source = foundryTarget(raw.Metadata)
	}
	if name == "" {
		// Foundry layout: out/<Source>.sol/<Name>.json
		name = strings.TrimSuffix(filepath.Base(path), ".json")
		source = filepath.Base(filepath.Dir(path))
	}

	e := &entry{
		ref: domain.ArtifactRef{
			ContractName: name,
			SourceName:   source,
			Path:         path,
		},
		abi:      raw.ABI,
		bytecode: bytecode,
	}
	l.index[name] = append(l.index[name], e)

	return nil
}

func parseBytecode(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}

	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Object, true
	}

	return "", false
}

func foundryTarget(raw json.RawMessage) (name, source string) {
	if len(raw) == 0 {
		return "", ""
	}

	var meta foundryMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return "", ""
	}

	// There should only be one entry
	for src, contract := range meta.Settings.CompilationTarget {
		return contract, src
	}
	return "", ""
}

// decode parses the ABI and creation bytecode of a matched entry
func decode(e *entry) (*domain.Artifact, error) {
	code := e.bytecode
	if code == "" || code == "0x" {
		return nil, fmt.Errorf("%w: %s (abstract contract or interface?)", domain.ErrNoBytecode, e.ref.ContractName)
	}
	if strings.Contains(code, "__") {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnlinkedBytecode, e.ref.ContractName)
	}
	if !strings.HasPrefix(code, "0x") {
		code = "0x" + code
	}

	bytecode, err := hexutil.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode in %s: %w", e.ref.Path, err)
	}

	parsed, err := abi.JSON(bytes.NewReader(e.abi))
	if err != nil {
		return nil, fmt.Errorf("invalid ABI in %s: %w", e.ref.Path, err)
	}

	return &domain.Artifact{
		ContractName: e.ref.ContractName,
		SourceName:   e.ref.SourceName,
		Path:         e.ref.Path,
		ABI:          parsed,
		Bytecode:     bytecode,
	}, nil
}
