// Package projections collects weekly player projections across seasons
// and position groups and derives the season and per-game views.
//
// Collection degrades per slice: a season/group that cannot be fetched is
// recorded as a failure and left out, the rest of the table is kept.
package projections
