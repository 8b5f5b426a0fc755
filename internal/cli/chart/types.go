package chart

import pkgchart "github.com/pirakansa/helmdeps/pkg/chart"

type Manifest = pkgchart.Manifest
type Dependency = pkgchart.Dependency
type Node = pkgchart.Node
