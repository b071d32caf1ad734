// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package catalog builds the event list the home screen shows.

The remote collaborator owns the canonical event records:

	GET  {base}/eventsdata -> JSON array of events
	POST {base}/eventsdata -> created event with assigned id

Refresh pulls that list, sorts ascending by date, and joins each event
with local annotations: likes from the engagement ledger (absent = 0) and
registered = count of registration records for the event. Refreshes carry
a generation counter; a response arriving after a newer refresh began is
discarded rather than applied.

ApplyFilters and Recommend are pure derivations over the joined view.
*/
package catalog
