package model

// Package model defines domain data structures used across the app: download
// tasks, prefetched video metadata, and status enums. Structures are designed
// for direct rendering in the UI and explicit state transitions.
