package config

import (
	"fmt"

	"go.trai.ch/crossbow/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

func decodeTasks(node *yaml.Node) (*domain.TaskMap, error) {
	tasks := &domain.TaskMap{}
	node = resolveAlias(node)
	if node.Kind == 0 || isNull(node) {
		return tasks, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, invalidValue(node, "tasks must be a mapping")
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		v, err := decodeTaskValue(value)
		if err != nil {
			return nil, zerr.With(err, "task", key.Value)
		}
		tasks.Set(key.Value, v)
	}
	return tasks, nil
}

func decodeTaskValue(node *yaml.Node) (domain.TaskValue, error) {
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.ScalarNode:
		if isNull(node) {
			return domain.TaskValue{}, invalidValue(node, "task value is empty")
		}
		return domain.Ref(node.Value), nil

	case yaml.SequenceNode:
		items := make([]domain.TaskValue, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := decodeTaskValue(item)
			if err != nil {
				return domain.TaskValue{}, err
			}
			items = append(items, v)
		}
		return domain.List(items...), nil

	case yaml.MappingNode:
		def, err := decodeDefinition(node)
		if err != nil {
			return domain.TaskValue{}, err
		}
		return domain.Group(def), nil

	default:
		return domain.TaskValue{}, invalidValue(node, "unsupported task value")
	}
}

func decodeDefinition(node *yaml.Node) (domain.TaskDefinition, error) {
	var def domain.TaskDefinition

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, resolveAlias(node.Content[i+1])

		switch key {
		case keyDescription:
			def.Description = value.Value
		case keyRunMode:
			mode, err := domain.ParseRunMode(value.Value)
			if err != nil {
				return def, zerr.With(err, "line", value.Line)
			}
			def.RunMode = mode
		case keyIfChanged:
			paths, err := decodeStrings(value)
			if err != nil {
				return def, err
			}
			def.IfChanged = paths
		case keyTasks:
			v, err := decodeTaskValue(value)
			if err != nil {
				return def, err
			}
			if v.Kind == domain.ArrayOfTasks {
				def.Tasks = v.Items
			} else {
				def.Tasks = []domain.TaskValue{v}
			}
		default:
			v, err := decodeTaskValue(value)
			if err != nil {
				return def, zerr.With(err, "variant", key)
			}
			def.Named = append(def.Named, domain.NamedTaskValue{Name: key, Value: v})
		}
	}

	return def, nil
}

func decodeStrings(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode {
				return nil, invalidValue(item, "expected a string")
			}
			out = append(out, item.Value)
		}
		return out, nil
	default:
		return nil, invalidValue(node, "expected a string or a list of strings")
	}
}

func decodeOptions(node *yaml.Node) (domain.Options, error) {
	node = resolveAlias(node)
	if node.Kind == 0 || isNull(node) {
		return domain.NewOptions(), nil
	}
	if node.Kind != yaml.MappingNode {
		return domain.Options{}, invalidValue(node, "options must be a mapping")
	}

	opts := domain.NewOptions()
	for i := 0; i+1 < len(node.Content); i += 2 {
		v, err := decodeOptionValue(node.Content[i+1])
		if err != nil {
			return domain.Options{}, err
		}
		opts.Set(node.Content[i].Value, v)
	}
	return opts, nil
}

func decodeOptionValue(node *yaml.Node) (any, error) {
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.MappingNode:
		return decodeOptions(node)
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := decodeOptionValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "line", node.Line)
		}
		return v, nil
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func invalidValue(node *yaml.Node, msg string) error {
	return zerr.With(
		zerr.Wrap(domain.ErrInvalidTaskValue, msg),
		"line", fmt.Sprintf("%d:%d", node.Line, node.Column),
	)
}
