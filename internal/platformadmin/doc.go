// Package platformadmin administers the platform alias graph: the directed
// edges that tell the resolver which platforms' DAT entries apply to a
// game's release platforms. Groups are kept as stars, one canonical platform
// with aliases pointing out from it, and the service owns the writes that
// keep that shape.
package platformadmin
