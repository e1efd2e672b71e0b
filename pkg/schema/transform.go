package schema

import "fmt"

// TransformFunc reduces a full schema description to the compact structure
// interpolated into prompts. The refiner node depends on this contract only;
// Simplify is the default binding.
type TransformFunc func(description map[string]any) (any, error)

// Simplify reduces a JSON-schema description to a plain property map:
// nested objects recurse, arrays become single-element samples, and every
// leaf collapses to its type and description. $ref entries are resolved
// against the description's $defs; a definition that references itself,
// directly or through another definition, is an error (recursive models
// cannot be rendered as a finite sample).
func Simplify(description map[string]any) (any, error) {
	props, ok := description["properties"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema description has no properties")
	}
	return simplifyProperties(props, description, map[string]bool{})
}

// resolving tracks the $defs names on the current resolution path so a
// cyclic reference fails instead of recursing forever.
func simplifyProperties(props map[string]any, root map[string]any, resolving map[string]bool) (map[string]any, error) {
	result := make(map[string]any, len(props))

	for key, raw := range props {
		prop, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schema property %q is not an object", key)
		}

		simplified, err := simplifyProperty(key, prop, root, resolving)
		if err != nil {
			return nil, err
		}
		result[key] = simplified
	}

	return result, nil
}

func simplifyProperty(key string, prop map[string]any, root map[string]any, resolving map[string]bool) (any, error) {
	if ref, ok := prop["$ref"].(string); ok {
		return simplifyRef(ref, root, resolving)
	}

	typ, ok := prop["type"].(string)
	if !ok {
		return nil, fmt.Errorf("schema property %q has neither type nor $ref", key)
	}

	switch typ {
	case "object":
		if nested, ok := prop["properties"].(map[string]any); ok {
			return simplifyProperties(nested, root, resolving)
		}
		return map[string]any{"type": typ, "description": stringOrEmpty(prop["description"])}, nil

	case "array":
		items, ok := prop["items"].(map[string]any)
		if !ok {
			return []any{}, nil
		}
		if ref, ok := items["$ref"].(string); ok {
			element, err := simplifyRef(ref, root, resolving)
			if err != nil {
				return nil, err
			}
			return []any{element}, nil
		}
		if itemType, ok := items["type"].(string); ok {
			return []any{itemType}, nil
		}
		return []any{}, nil

	default:
		return map[string]any{"type": typ, "description": stringOrEmpty(prop["description"])}, nil
	}
}

// simplifyRef resolves a local "#/$defs/Name" reference and simplifies the
// referenced definition's properties, guarding against reference cycles.
func simplifyRef(ref string, root map[string]any, resolving map[string]bool) (map[string]any, error) {
	name := refName(ref)
	if resolving[name] {
		return nil, fmt.Errorf("cyclic $ref %q", ref)
	}

	props, err := resolveRef(ref, name, root)
	if err != nil {
		return nil, err
	}

	resolving[name] = true
	defer delete(resolving, name)

	return simplifyProperties(props, root, resolving)
}

// resolveRef returns the properties of the named definition in root's $defs.
func resolveRef(ref, name string, root map[string]any) (map[string]any, error) {
	defs, ok := root["$defs"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unresolved $ref %q: description has no $defs", ref)
	}
	def, ok := defs[name].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unresolved $ref %q", ref)
	}
	props, ok := def["properties"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("$ref %q resolves to a definition without properties", ref)
	}
	return props, nil
}

// refName extracts the final path segment of a local reference.
func refName(ref string) string {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '/' {
			return ref[i+1:]
		}
	}
	return ref
}

func stringOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}
