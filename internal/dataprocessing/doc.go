// Package dataprocessing turns the raw per-game event feature store into
// the two analysis tables served to consumers.
//
// # Architecture
//
// The package is organized into small pure transforms plus one
// orchestrator:
//
// 1. Shift: splits a game into a home row and an away row (TeamWeekRow)
// 2. ExpectedAverager: opponent-adjusted expectations per team and week
// 3. PrepareFold / Fold: derives home targets from away targets, then
// reshapes each game into one row per team
// 4. AssembleHomeAway / AssembleFolded: left-joins expectations back on
// 5. Processor: runs the stages in order with logging and tracing
//
// # Usage
//
//	processor, err := dataprocessing.NewProcessor(logger, dataprocessing.ProcessorConfig{
//	    Blend: dataprocessing.DefaultBlend(),
//	})
//	if err != nil {
//	    return err
//	}
//	tables, err := processor.Build(ctx, games)
//
// # Data Flow
//
//	GameRows → DropIncomplete → Shift → ExpectedAverager ─┐
//	        └→ PrepareFold → AssembleHomeAway ←──────────┤
//	                     └→ Fold → AssembleFolded ←──────┘
//
// # Invariants
//
// No transform mutates its input. Expected averages for week w only read
// weeks before w of the same season. Folding never computes the home
// negations itself; PrepareFold does that from the away columns.
//
// # Presentation
//
// HomeAwayRecord and FoldedRecord render rows with the public column names
// from the taxonomy rename map. Time of possession stays in seconds until
// this step, where FormatClock renders it as M:SS.
package dataprocessing
