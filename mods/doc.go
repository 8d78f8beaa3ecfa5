// Package mods hosts the bundled reference content modules. Each subpackage
// is a self-contained mod that contributes items, tiles, recipe groups,
// recipes, and rules through the stable facade in pkg/modapi.
package mods
