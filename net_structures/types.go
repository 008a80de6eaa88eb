// Package net_structures implements the wire codec for Minecraft Java
// Edition's primitive and composite data types — the layer every packet in
// protocol/ decodes/encodes through.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Data_types
package net_structures

// ByteArray is a bare byte slice, aliased so field declarations read as
// wire types rather than []byte.
type ByteArray = []byte
