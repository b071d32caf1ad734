// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package reminder schedules the bounded sequence of daily notifications
leading up to an event.

Setting a reminder for an event dated d calendar days from now (d > 0)
schedules d+1 notifications firing today through the event date inclusive,
then appends one "Reminder set for {event} on {date}" entry to the
notification log. An event dated today or earlier is rejected with
ErrEventPassed; a refused permission request is rejected with
ErrPermissionDenied before anything is scheduled.

Setting a reminder again for the same event cancels the previous schedule
first, so repeat taps replace rather than stack.
*/
package reminder
