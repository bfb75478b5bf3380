// Package assets embeds the world files shipped with the server binary.
package assets

import "embed"

// Worlds holds every .tmx file under worlds/.
//
//go:embed worlds/*.tmx
var Worlds embed.FS

// WorldsDir is the directory of Worlds that holds the .tmx files.
const WorldsDir = "worlds"

// DefaultWorld is the world loaded when none is configured.
const DefaultWorld = "arena"
