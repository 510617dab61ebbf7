// Package purge collapses the history of a branch into a single commit.
//
// Service checks that the local branch and its remote-tracking counterpart
// point at identical history, then creates an orphan branch from the working
// tree, commits it, renames it over the original branch and force-pushes the
// result. Divergent or missing branches are reported and leave the repository
// untouched.
package purge
