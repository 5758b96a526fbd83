// Package fabric performs the first touch of emulated fabric-attached memory.
//
// Inside a VM the emulated fabric memory is exposed as a device file. Touch
// maps the start of that device as a shared region, writes the guest's
// identification record (see package ident) into it and releases the
// mapping. The host sees the record in the backing file of the device,
// which Inspect decodes.
package fabric
