package s2e

// HelpText is the command reference printed by the HELP/? short-circuit.
// It mirrors the module firmware's AT command set documentation.
const HelpText = `=== W55RP20-S2E AT Help ===
Enter command mode: +++ (guard time >= 500ms before/after)
Exit command mode: EX
Save settings: SV  | Reboot: RT  | Factory reset: FR

[Device Info] (RO)
MC  -> MAC address (ex: MC00:08:DC:00:00:01)
VR  -> Firmware version (ex: VR1.0.0)
MN  -> Product name (ex: MNWIZ5XXRSR-RP)
ST  -> Status (BOOT/OPEN/CONNECT/UPGRADE/ATMODE)
UN  -> UART interface str (ex: UNRS-232/TTL)
UI  -> UART interface code (ex: UI0)

[Network] (RW)
OPx -> Mode: 0 TCP client, 1 TCP server, 2 mixed, 3 UDP, 4 SSL, 5 MQTT, 6 MQTTS
IMx -> IP alloc: 0 static, 1 DHCP
LIa.b.c.d -> Local IP (ex: LI192.168.11.2)
SMa.b.c.d -> Subnet (ex: SM255.255.255.0)
GWa.b.c.d -> Gateway (ex: GW192.168.11.1)
DSa.b.c.d -> DNS (ex: DS8.8.8.8)
LPn -> Local port (ex: LP5000)
RHa.b.c.d / domain -> Remote host (ex: RH192.168.11.3)
RPn -> Remote port (ex: RP5000)

[UART] (RW)
BRx -> Baud (12=115200, 13=230400)
DBx -> Data bits (0=7bit, 1=8bit)
PRx -> Parity (0=None, 1=Odd, 2=Even)
SBx -> Stop bits (0=1bit, 1=2bit)
FLx -> Flow (0=None, 1=XON/XOFF, 2=RTS/CTS)
ECx -> Echo (0=Off, 1=On)

[Packing] (RW)
PTn -> Time delimiter ms (ex: PT1000)
PSn -> Size delimiter bytes (ex: PS64)
PDxx -> Char delimiter hex (ex: PD0D)

[Options] (RW)
ITn -> Inactivity sec (ex: IT30)
RIn -> Reconnect interval ms (ex: RI3000)
CPx -> Conn password enable (0/1)
NPxxxx -> Conn password (max 8 chars)
SPxxxx -> Search ID (max 8 chars)
DGx -> Debug msg (0/1)
KAx -> Keep-alive (0/1)
KIn -> KA initial interval ms (ex: KI7000)
KEn -> KA retry interval ms (ex: KE5000)
SOn -> SSL recv timeout ms (ex: SO2000)

[MQTT] (RW)
QUuser QPpass QCid QK60 PUtopic
U0sub U1sub U2sub QO0

Type HELP or ? to show this list again.
`
