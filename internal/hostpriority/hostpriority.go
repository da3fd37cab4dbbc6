// Package hostpriority raises the scheduling priority of the benchmarking
// process so measurement rounds suffer less preemption. Elevation is best
// effort: hosts that deny the privilege leave the priority unchanged and the
// engine carries on.
package hostpriority

// elevatedNice is the niceness requested on Unix-like hosts. Anything lower
// usually requires elevated privileges.
const elevatedNice = -10
