// Package http exposes the escala store over a JSON API.
//
// The router exposes the following endpoints:
//   - GET /catalog: ministries, functions, shifts and the permission catalog.
//   - GET /session, PUT /session: the active user and its permissions. Switching
//     takes {"user_id"}; no credential is checked.
//   - GET /roles, PUT /roles/{role}: role to permission mapping. The administrator
//     role answers 409 with error_code IMMUTABLE_ROLE.
//   - GET /servants, POST /servants, GET|PUT|DELETE /servants/{id}: servant
//     directory. Listing accepts q (accent insensitive), ministry_id and active.
//   - GET /functions/{id}/servants: active servants able to serve a function.
//   - GET /users, POST /users, PUT|DELETE /users/{id}: application users.
//   - GET /events, POST /events, GET|PUT|DELETE /events/{id}: special events.
//   - GET /schedules?from=&to=, POST /schedules, GET|PUT /schedules/{date}:
//     schedules keyed by YYYY-MM-DD. Posting a date already stored replaces it.
//   - POST /schedule-items: mints an item with a fresh id without storing it.
//   - GET /reports/participation, GET /reports/ministries,
//     GET /reports/servants/{id}: participation counts over from/to.
//   - GET /reminders?date=: duties grouped by servant for the given days.
//   - GET /dashboard?date=: summary for the week containing date (default today).
//
// Entity ids travel as JSON strings, in responses and requests alike.
//
// Errors are JSON objects with a Portuguese message; validation failures add a
// per-field errors map and answer 422. Permissions are reported to clients but
// not enforced here.
package http
