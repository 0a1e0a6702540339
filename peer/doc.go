// Package peer implements the identity and endpoint types the DHT wire
// codec packs into and recovers from a datagram: the 32-byte PeerId and
// the variable-length PeerAddress that pairs an id with an IP endpoint
// and feature flags.
//
// Neither type touches a socket or a key. PeerId's XOR-overlap pack lets
// a codec carry two 32-byte ids in 36 bytes while exposing 4 bytes of
// each in clear as a demultiplexing hint; PeerAddress's encode/decode
// elide whichever parts the surrounding datagram already supplies.
package peer
