package mapping

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/BayerSe/expected-shortfall-backtesting/pkg/style"
)

var (
	ErrUnmappedIdentifier = errors.New("unmapped backtest identifier")
	ErrUnstyledLabel      = errors.New("label has no style")
	ErrUnmappedDGP        = errors.New("unmapped data generating process")
	ErrDuplicateStyle     = errors.New("labels share color and marker")
)

// Default is the registry of the published figures and tables.
var Default = NewRegistry(backtestLabels, labelStyles, dgpNames)

// Registry resolves backtest identifiers to display labels and display labels to styles.
// The tables are copied on construction and never change afterwards.
type Registry struct {
	labels map[string]string
	styles map[string]style.Style
	dgps   map[string]string
}

func NewRegistry(labels map[string]string, styles map[string]style.Style, dgps map[string]string) *Registry {
	r := &Registry{
		labels: make(map[string]string, len(labels)),
		styles: make(map[string]style.Style, len(styles)),
		dgps:   make(map[string]string, len(dgps)),
	}
	for k, v := range labels {
		r.labels[k] = v
	}
	for k, v := range styles {
		r.styles[k] = v
	}
	for k, v := range dgps {
		r.dgps[k] = v
	}
	return r
}

func (r *Registry) Remap(identifier string) (string, error) {
	label, ok := r.labels[identifier]
	if !ok {
		return "", errors.Wrapf(ErrUnmappedIdentifier, "%q", identifier)
	}
	return label, nil
}

func (r *Registry) StyleFor(label string) (style.Style, error) {
	s, ok := r.styles[label]
	if !ok {
		return style.Style{}, errors.Wrapf(ErrUnstyledLabel, "%q", label)
	}
	return s, nil
}

// Styles resolves the styles of the given labels in order.
func (r *Registry) Styles(labels []string) ([]style.Style, error) {
	styles := make([]style.Style, len(labels))
	for i, label := range labels {
		s, err := r.StyleFor(label)
		if err != nil {
			return nil, err
		}
		styles[i] = s
	}
	return styles, nil
}

func (r *Registry) DGPName(nullModel string) (string, error) {
	name, ok := r.dgps[nullModel]
	if !ok {
		return "", errors.Wrapf(ErrUnmappedDGP, "%q", nullModel)
	}
	return name, nil
}

// Identifiers returns the known backtest identifiers, sorted.
func (r *Registry) Identifiers() []string {
	ids := make([]string, 0, len(r.labels))
	for id := range r.labels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Labels returns the distinct display labels, sorted.
func (r *Registry) Labels() []string {
	seen := make(map[string]struct{})
	var labels []string
	for _, label := range r.labels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Validate checks that every given label has a style and that no two of them share both
// color and marker. Without arguments it checks every styled label. All violations are
// reported together.
func (r *Registry) Validate(labels ...string) (err error) {
	if len(labels) == 0 {
		for label := range r.styles {
			labels = append(labels, label)
		}
		sort.Strings(labels)
	}

	for id, label := range r.labels {
		if label == "" {
			err = multierr.Append(err, errors.Wrapf(ErrUnmappedIdentifier, "%q maps to an empty label", id))
		}
	}

	owners := make(map[string]string, len(labels))
	for _, label := range labels {
		s, styleErr := r.StyleFor(label)
		if styleErr != nil {
			err = multierr.Append(err, styleErr)
			continue
		}

		key := fmt.Sprintf("%s/%d", s.Hex(), s.Marker)
		if owner, ok := owners[key]; ok && owner != label {
			err = multierr.Append(err, errors.Wrapf(ErrDuplicateStyle, "%q and %q", owner, label))
			continue
		}
		owners[key] = label
	}

	return err
}

// RemapAll resolves a batch of identifiers, failing on the first unknown one.
func (r *Registry) RemapAll(identifiers []string) ([]string, error) {
	labels := make([]string, len(identifiers))
	for i, id := range identifiers {
		label, err := r.Remap(id)
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}
	return labels, nil
}
