package usecase

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/trebuchet-org/tvk-deploy/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Currently no parameters, but we keep the struct for future extensibility
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	Selected string
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name    string
	Network *config.Network
	Error   error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver NetworkResolver
	cfg      *config.RuntimeConfig
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver, cfg *config.RuntimeConfig) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
		cfg:      cfg,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	names := uc.resolver.Networks()

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		status := NetworkStatus{
			Name: name,
		}

		network, err := uc.resolver.Resolve(name)
		if err != nil {
			status.Error = err
		} else {
			status.Network = network
		}

		networks = append(networks, status)
	}

	result := &ListNetworksResult{
		Networks: networks,
	}
	if uc.cfg == nil {
		return result, nil
	}

	// The selection may come from --rpc-url or be unresolvable; list it either way
	selected := NetworkStatus{Name: uc.cfg.NetworkName, Network: uc.cfg.Network, Error: uc.cfg.NetworkError}
	if selected.Network != nil {
		selected.Name = selected.Network.Name
	}
	result.Selected = selected.Name

	if selected.Name != "" && !lo.ContainsBy(networks, func(n NetworkStatus) bool { return n.Name == selected.Name }) {
		result.Networks = append(result.Networks, selected)
		sort.Slice(result.Networks, func(i, j int) bool {
			return result.Networks[i].Name < result.Networks[j].Name
		})
	}

	return result, nil
}
