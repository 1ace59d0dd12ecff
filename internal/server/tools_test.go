package server

import (
	"encoding/json"
	"testing"
)

func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not found", name)
	return Tool{}
}

func TestGetToolDefinitions(t *testing.T) {
	expectedTools := []string{
		"image_load",
		"image_list",
		"image_remove",
		"image_clear",
		"image_select",
		"image_set_params",
		"image_reset_params",
		"image_dataset_stats",
		"image_render",
		"image_filter",
		"image_swirl",
		"image_transform",
		"image_sample_color",
		"image_dominant_colors",
		"image_export",
	}

	tools := GetToolDefinitions()
	if len(tools) != len(expectedTools) {
		t.Errorf("tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	seen := make(map[string]bool)
	for _, tool := range tools {
		if seen[tool.Name] {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		seen[tool.Name] = true
	}
	for _, name := range expectedTools {
		if !seen[name] {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required parameter must be declared.
			if required, ok := tool.InputSchema["required"].([]string); ok {
				for _, r := range required {
					if _, ok := props[r]; !ok {
						t.Errorf("required parameter %s is not a property", r)
					}
				}
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := map[string][]string{
		"image_remove":       {"id"},
		"image_set_params":   {"params"},
		"image_render":       {"id"},
		"image_swirl":        {"amount"},
		"image_transform":    {"id", "kind"},
		"image_sample_color": {"x", "y"},
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := toolByName(t, name).InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			if len(got) != len(want) {
				t.Fatalf("required: got %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("required: got %v, want %v", got, want)
				}
			}
		})
	}
}

func TestToolDefinitions_Enums(t *testing.T) {
	tests := []struct {
		tool  string
		param string
		want  []string
	}{
		{"image_render", "view", []string{"preview", "detail", "full"}},
		{"image_set_params", "scope", []string{"auto", "sel", "all", "exceptSel"}},
		{"image_export", "name_mode", []string{"simple", "detail"}},
		{"image_export", "format", []string{"png", "jpeg"}},
		{"image_transform", "kind", []string{"crop", "rotate", "flip", "resize"}},
		{"image_filter", "mode", []string{"none", "grayscale", "sepia", "saturation-gray"}},
	}

	for _, tt := range tests {
		t.Run(tt.tool+"."+tt.param, func(t *testing.T) {
			props := toolByName(t, tt.tool).InputSchema["properties"].(map[string]interface{})
			prop, ok := props[tt.param].(map[string]interface{})
			if !ok {
				t.Fatalf("%s should exist and be a map", tt.param)
			}
			enum, ok := prop["enum"].([]string)
			if !ok {
				t.Fatal("enum should be a string slice")
			}
			got := make(map[string]bool)
			for _, e := range enum {
				got[e] = true
			}
			for _, w := range tt.want {
				if !got[w] {
					t.Errorf("enum missing %q", w)
				}
			}
		})
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolDefaults := map[string]map[string]interface{}{
		"image_dominant_colors": {"count": 5},
		"image_export":          {"name_mode": "simple", "scope": "auto"},
		"image_render":          {"format": "png"},
	}

	for toolName, expectedDefaults := range toolDefaults {
		props := toolByName(t, toolName).InputSchema["properties"].(map[string]interface{})
		for paramName, expected := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}
			if got := param["default"]; got != expected {
				t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, got, expected)
			}
		}
	}
}

func TestToolDefinitions_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions())
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	for _, tool := range decoded {
		if _, ok := tool["inputSchema"]; !ok {
			t.Errorf("%v: missing inputSchema key", tool["name"])
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	result := resp.Result.(map[string]interface{})
	if len(result["tools"].([]Tool)) != len(GetToolDefinitions()) {
		t.Error("tools/list should return every tool definition")
	}
}
