package gateway

// SnapshotKey is the single blob key holding the whole serialized snapshot.
const SnapshotKey = "commentbox:snapshot"
