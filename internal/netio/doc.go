// Package netio provides the connection factory shared by every transport.
//
// A [ServerChannelFactory] is built once by the bootstrap from the boss pool,
// the worker pool, the shared timer and the channel registry. Transports use
// it to bind listening sockets ([ServerChannelFactory.Bind]), to run their
// accept loop on the boss pool ([ServerChannelFactory.Serve]) and to run
// per-connection work on the worker pool ([ServerChannelFactory.Submit]).
//
// Every bound listener and every accepted connection is registered in the
// channel registry for its whole lifetime, so that [channel.Group.Close] can
// close whatever is still open at shutdown.
package netio
