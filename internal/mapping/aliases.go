package mapping

import "strconv"

// nodeAlias is the alias of the i-th pattern node.
func nodeAlias(i int) string {
	return "t" + strconv.Itoa(i)
}

// aliasState hands out join-table aliases. It starts at the node count so
// j-aliases never collide with t-aliases by number. One translation owns
// one aliasState; it is never shared.
type aliasState struct {
	next int
}

func newAliasState(nodeCount int) *aliasState {
	return &aliasState{next: nodeCount}
}

// joinAlias returns the next synthetic alias: j{n}, j{n+1}, ...
func (a *aliasState) joinAlias() string {
	alias := "j" + strconv.Itoa(a.next)
	a.next++
	return alias
}
