package games

// Rooms are identified by a caller-chosen code; players join a room with a
// display name and an optional shared password (the first joiner's password
// becomes the room's)
// The first player to join a room is its admin; admin authority moves to the
// next-oldest player if the admin disconnects, and can be asserted explicitly
// by a client after failover
// The admin picks how many imposters a round has (optionally randomized in
// [1, n]) and whether the category label is revealed, then starts the round
// Everyone but the imposters is shown the same secret word; imposters get no
// word, but see who their fellow imposters are so they can coordinate
// Players then discuss and try to identify the imposters out loud; nothing
// about the discussion itself goes through the server
// "nextGame" replaces the current round wholesale with a fresh
// category/word/imposter draw

// Implementation details:
// - One websocket endpoint; the room ID travels inside each message rather
//   than in the URL
// - All of a room's state transitions are serialized; rooms are independent
// - A room disappears from the registry the moment its last player leaves
// - Imposter count must stay below the player count; the server rejects,
//   never clamps
// - Players may broadcast transient emote reactions (smile, heart, ...) that
//   clear when an empty name is sent
