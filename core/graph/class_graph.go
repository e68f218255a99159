package graph

import (
	"sort"
	"sync"

	"github.com/gtechsltn/csharp-to-js/core/logger"
	"github.com/gtechsltn/csharp-to-js/core/models"
)

// Node is one class file in the graph.
type Node struct {
	FilePath     string
	Class        *models.ClassRecord
	Dependencies []string // files this class imports
	Dependents   []string // files importing this class
}

// Resolver is satisfied by resolver.ClassDependencyResolver.
type Resolver interface {
	Resolve(target *models.ClassRecord) []*models.ClassRecord
}

// ClassGraph relates class files through their resolved imports.
type ClassGraph struct {
	nodes map[string]*Node
	order []string
	mutex sync.RWMutex
}

func NewClassGraph() *ClassGraph {
	return &ClassGraph{
		nodes: make(map[string]*Node),
	}
}

// BuildGraph constructs the graph for a batch of classes.
func (cg *ClassGraph) BuildGraph(classes []*models.ClassRecord, resolver Resolver) {
	cg.mutex.Lock()
	defer cg.mutex.Unlock()

	cg.nodes = make(map[string]*Node)
	cg.order = nil

	// First pass: create all nodes
	for _, class := range classes {
		if _, exists := cg.nodes[class.FilePath]; exists {
			continue
		}
		cg.nodes[class.FilePath] = &Node{FilePath: class.FilePath, Class: class}
		cg.order = append(cg.order, class.FilePath)
	}

	// Second pass: build dependency relationships
	for _, class := range classes {
		node := cg.nodes[class.FilePath]
		for _, dep := range resolver.Resolve(class) {
			if dep.FilePath == class.FilePath || contains(node.Dependencies, dep.FilePath) {
				continue
			}
			node.Dependencies = append(node.Dependencies, dep.FilePath)
			if depNode, ok := cg.nodes[dep.FilePath]; ok {
				depNode.Dependents = append(depNode.Dependents, class.FilePath)
			}
		}
	}

	logger.Debug("ClassGraph: Built graph with %d nodes", len(cg.nodes))
}

// GetDependencies returns direct dependencies of a file
func (cg *ClassGraph) GetDependencies(filePath string) []string {
	cg.mutex.RLock()
	defer cg.mutex.RUnlock()

	node, exists := cg.nodes[filePath]
	if !exists {
		return []string{}
	}
	dependencies := make([]string, len(node.Dependencies))
	copy(dependencies, node.Dependencies)
	return dependencies
}

// GetDependents returns files that depend on this file
func (cg *ClassGraph) GetDependents(filePath string) []string {
	cg.mutex.RLock()
	defer cg.mutex.RUnlock()

	node, exists := cg.nodes[filePath]
	if !exists {
		return []string{}
	}
	dependents := make([]string, len(node.Dependents))
	copy(dependents, node.Dependents)
	return dependents
}

// DetectCycles finds circular imports. Each cycle is reported once, starting
// at its first file in batch order.
func (cg *ClassGraph) DetectCycles() [][]string {
	cg.mutex.RLock()
	defer cg.mutex.RUnlock()

	var cycles [][]string
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var path []string

	var visit func(filePath string)
	visit = func(filePath string) {
		visited[filePath] = true
		onStack[filePath] = true
		path = append(path, filePath)

		for _, dep := range cg.nodes[filePath].Dependencies {
			if _, ok := cg.nodes[dep]; !ok {
				continue
			}
			if onStack[dep] {
				start := indexOf(path, dep)
				cycle := make([]string, len(path)-start)
				copy(cycle, path[start:])
				cycles = append(cycles, cycle)
				continue
			}
			if !visited[dep] {
				visit(dep)
			}
		}

		path = path[:len(path)-1]
		onStack[filePath] = false
	}

	for _, filePath := range cg.order {
		if !visited[filePath] {
			visit(filePath)
		}
	}

	if len(cycles) > 0 {
		logger.Debug("ClassGraph: Detected %d cycles", len(cycles))
	}
	return cycles
}

// EmissionOrder returns classes with dependencies before dependents (Kahn's
// algorithm). Classes left on a cycle are appended in batch order, so the
// result always covers the whole batch.
func (cg *ClassGraph) EmissionOrder() []*models.ClassRecord {
	cg.mutex.RLock()
	defer cg.mutex.RUnlock()

	inDegree := make(map[string]int, len(cg.nodes))
	var queue []string
	for _, filePath := range cg.order {
		degree := 0
		for _, dep := range cg.nodes[filePath].Dependencies {
			if _, ok := cg.nodes[dep]; ok {
				degree++
			}
		}
		inDegree[filePath] = degree
		if degree == 0 {
			queue = append(queue, filePath)
		}
	}

	emitted := make(map[string]bool, len(cg.nodes))
	result := make([]*models.ClassRecord, 0, len(cg.nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		emitted[current] = true
		result = append(result, cg.nodes[current].Class)

		dependents := append([]string(nil), cg.nodes[current].Dependents...)
		sort.SliceStable(dependents, func(i, j int) bool {
			return indexOf(cg.order, dependents[i]) < indexOf(cg.order, dependents[j])
		})
		for _, dependent := range dependents {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(cg.nodes) {
		logger.Debug("ClassGraph: %d classes are on import cycles", len(cg.nodes)-len(result))
		for _, filePath := range cg.order {
			if !emitted[filePath] {
				result = append(result, cg.nodes[filePath].Class)
			}
		}
	}

	return result
}

// Len returns the number of nodes.
func (cg *ClassGraph) Len() int {
	cg.mutex.RLock()
	defer cg.mutex.RUnlock()
	return len(cg.nodes)
}

func contains(slice []string, item string) bool {
	return indexOf(slice, item) >= 0
}

func indexOf(slice []string, item string) int {
	for i, s := range slice {
		if s == item {
			return i
		}
	}
	return -1
}
