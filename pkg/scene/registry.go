package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Seeded      bool   `json:"seeded"` // Whether the seed changes the scene contents
}

type sceneEntry struct {
	info  SceneInfo
	build func(seed int64) *Scene
}

var builtinScenes = map[string]sceneEntry{
	"default": {
		info: SceneInfo{Description: "Diffuse, hollow glass and metal spheres on a ground sphere"},
		build: func(int64) *Scene {
			return NewDefaultScene()
		},
	},
	"random": {
		info:  SceneInfo{Description: "Many small random spheres around three large ones", Seeded: true},
		build: func(seed int64) *Scene { return NewRandomScene(seed) },
	},
	"spheregrid": {
		info: SceneInfo{Description: "Grid of metal spheres with varying color and fuzz"},
		build: func(int64) *Scene {
			return NewSphereGridScene()
		},
	},
}

// Lookup builds the named built-in scene. The seed only affects seeded scenes.
func Lookup(name string, seed int64) (*Scene, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	entry, ok := builtinScenes[key]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return entry.build(seed), nil
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenes returns metadata for every built-in scene, sorted by name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, name := range Names() {
		info := builtinScenes[name].info
		info.Name = name
		info.DisplayName = titleCase(name)
		scenes = append(scenes, info)
	}
	return scenes
}

// titleCase converts a string to title case (first letter of each word capitalized)
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
