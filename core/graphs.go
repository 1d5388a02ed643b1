// This file contains thin wrappers around the graph module
// for managing the derived views of a cup.
package core

import (
	"iter"

	"github.com/dominikbraun/graph"
)

var nodeId int = 0

func NextId() int {
	id := nodeId
	nodeId += 1
	return id
}

type GraphNode interface {
	// A unique ID that is used as the node hash
	Id() int
}

func getNodeId[T GraphNode](node T) int {
	return node.Id()
}

type DependencyGraph[T GraphNode] struct {
	graph.Graph[int, T]
}

func (g *DependencyGraph[T]) AddEdge(source, target T) error {
	return g.Graph.AddEdge(source.Id(), target.Id())
}

// Iterates the nodes reachable from start in breadth-first order
// together with their depth.
func (g *DependencyGraph[T]) BreadthSearchIter(start T) iter.Seq2[T, int] {
	iterator := func(yield func(v T, depth int) bool) {
		visitor := func(key, depth int) bool {
			v, _ := g.Vertex(key)
			return !yield(v, depth)
		}
		graph.BFSWithDepth(g.Graph, start.Id(), visitor)
	}
	return iterator
}

// A RankingGraph contains all rankings of a cup as its nodes.
// The directed edges model the dependencies between them:
// the master ranking feeds the two group entry rankings,
// each group entry ranking feeds its standings and the
// standings feed the bracket placements.
//
// The graph is acyclic, so a breadth-first walk from a changed
// ranking visits everything that has to be recomputed.
type RankingGraph struct {
	DependencyGraph[Ranking]
}

func NewRankingGraph(root Ranking) *RankingGraph {
	g := DependencyGraph[Ranking]{
		Graph: graph.New(getNodeId[Ranking], graph.Directed(), graph.Acyclic()),
	}
	rankingGraph := &RankingGraph{DependencyGraph: g}
	rankingGraph.AddVertex(root)
	return rankingGraph
}
