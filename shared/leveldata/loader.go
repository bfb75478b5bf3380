package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

const (
	layerHoles   = "Holes"
	layerSpawns  = "PlayerSpawn"
	propRadius   = "radius"
	propColor    = "color"
	defaultColor = "#1b1b1b"
)

// LoadWorldData parses a TMX file into world geometry. The map property
// "radius" sets the boundary, ellipse objects in the Holes layer become holes
// and objects in the PlayerSpawn layer become spawn points. Tiled's Y axis
// points down; it is flipped so the world uses Y-up like the simulation.
func LoadWorldData(fsys fs.FS, tmxPath string) (*WorldData, error) {
	worldMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	data := &WorldData{
		Name: strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
	}
	// Maps without a <properties> block leave Properties nil.
	if worldMap.Properties != nil {
		data.Radius = worldMap.Properties.GetFloat(propRadius)
	}
	if data.Radius <= 0 {
		return nil, fmt.Errorf("world %s: map property %q must be positive", tmxPath, propRadius)
	}

	for _, og := range worldMap.ObjectGroups {
		switch og.Name {
		case layerHoles:
			for _, o := range og.Objects {
				if len(o.Ellipses) == 0 {
					continue
				}
				color := o.Properties.GetString(propColor)
				if color == "" {
					color = defaultColor
				}
				data.Holes = append(data.Holes, Hole{
					X:      o.X + o.Width/2,
					Y:      -(o.Y + o.Height/2),
					Radius: (o.Width + o.Height) / 4,
					Color:  color,
				})
			}
		case layerSpawns:
			for _, o := range og.Objects {
				data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
					X:     o.X,
					Y:     -o.Y,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		}
	}

	// Sort spawns by index for consistent assignment
	sort.SliceStable(data.SpawnPoints, func(i, j int) bool {
		return data.SpawnPoints[i].Index < data.SpawnPoints[j].Index
	})

	return data, nil
}

// LoadAllWorlds discovers all .tmx files in dir within fsys and returns them
// keyed by stem name plus a sorted list of names.
func LoadAllWorlds(fsys fs.FS, dir string) (map[string]*WorldData, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	worlds := make(map[string]*WorldData, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		data, err := LoadWorldData(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		worlds[data.Name] = data
		names = append(names, data.Name)
	}

	sort.Strings(names)
	return worlds, names, nil
}
