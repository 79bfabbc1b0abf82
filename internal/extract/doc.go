// Package extract recovers a playlist's track listing from a parsed Apple Music page.
//
// # Strategies
//
// Apple Music pages embed their data in several undocumented ways. [Extract] tries three
// strategies in priority order and keeps the first one that yields at least one track:
//
//  1. Serialized server data: JSON arrays beginning with [{"intent" inside script elements,
//     or a script whose entire body is JSON. Decoded values are walked in document order
//     looking for track-lockup nodes.
//  2. JSON-LD: a MusicPlaylist object in a script of type application/ld+json.
//  3. Meta tags: every <meta property="music:song"> content value, without artists.
//
// Malformed embedded data never surfaces as an error; a page with nothing recoverable
// yields an empty [Result].
//
// # Values
//
// Embedded JSON is decoded into [Value], an ordered tagged tree. Object fields keep their
// source order so the track listing keeps the page's order. Lookups on absent fields or
// wrong kinds return nil or "" instead of failing. Decoding and walking use explicit stacks,
// so nesting depth is bounded only by memory.
package extract
