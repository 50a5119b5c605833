/*
Package selprotopy implements a client for the Schweitzer Engineering
Laboratories (SEL) ASCII/binary relay protocol suite.

Supports:
  - SEL Fast Meter (periodic analog/digital telemetry)
  - SEL Fast Message (metadata and point-name dictionaries)
  - SEL Fast Operate (controlled actuation of remote bits and breaker bits)

The package owns the binary-frame codec, the ASCII block parsers, and the
session-driven auto-discovery engine that threads a relay's self-reported
Relay Definition and Fast Meter Configuration blocks back into the parsers
that decode subsequent polls. It does not own the byte-stream transport
(telnet, serial, or raw TCP) — that is injected through the Transport
interface.

SEL Protocol Application Guide: https://selinc.com/api/download/5026/
*/
package selprotopy
