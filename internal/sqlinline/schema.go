package sqlinline

// Schema creates every table. Foreign keys restrict deletes; position
// uniqueness is deferred so a reorder can pass through transient duplicates
// inside its transaction.
const Schema = `--sql 3c3ce8b4-5d41-4feb-bbcb-e4fdb2c5b345
create table if not exists users (
    id            uuid primary key,
    email         text not null,
    password_hash text not null,
    first_name    varchar(150) not null,
    last_name     varchar(150) not null default '',
    phone         varchar(50) not null default '',
    cpf_cnpj      varchar(50) not null default '',
    address       varchar(200) not null default '',
    cep           varchar(10) not null default '',
    picture       text not null default '',
    user_type     varchar(20) not null default ''
                  check (user_type in ('', 'admin', 'gestor', 'staff', 'giver', 'beneficiary')),
    is_staff      boolean not null default false,
    is_superuser  boolean not null default false,
    is_active     boolean not null default true,
    date_joined   timestamptz not null default now(),
    constraint users_email_key unique (email)
);

create table if not exists events (
    id          uuid primary key,
    description varchar(150) not null,
    date        date not null,
    slug        varchar(50) not null,
    status      varchar(20) not null
                check (status in ('planejamento', 'pronto', 'concluido', 'cancelado', 'adiado')),
    position    integer not null check (position >= 0),
    constraint events_slug_key unique (slug),
    constraint events_position_key unique (position) deferrable initially deferred
);

create table if not exists photos (
    id          uuid primary key,
    event_id    uuid not null,
    description varchar(150) not null,
    image_file  text not null default '',
    slug        varchar(50) not null,
    position    integer not null check (position >= 0),
    constraint photos_slug_key unique (slug),
    constraint photos_event_position_key unique (event_id, position) deferrable initially deferred,
    constraint photos_event_id_fkey foreign key (event_id) references events (id) on delete restrict
);

create table if not exists items (
    id          uuid primary key,
    description varchar(150) not null,
    item_type   varchar(20) not null check (item_type in ('dinheiro', 'produto'))
);

create table if not exists donations (
    id          uuid primary key,
    user_id     uuid not null,
    event_id    uuid not null,
    direction   varchar(10) not null check (direction in ('entrada', 'saida')),
    description varchar(150) not null default '',
    date        date not null default current_date,
    constraint donations_user_id_fkey foreign key (user_id) references users (id) on delete restrict,
    constraint donations_event_id_fkey foreign key (event_id) references events (id) on delete restrict
);
create index if not exists donations_event_id_idx on donations (event_id);

create table if not exists donation_items (
    item_id     uuid not null,
    donation_id uuid not null,
    quantity    numeric not null check (quantity > 0),
    constraint donation_items_item_donation_key primary key (item_id, donation_id),
    constraint donation_items_item_id_fkey foreign key (item_id) references items (id) on delete restrict,
    constraint donation_items_donation_id_fkey foreign key (donation_id) references donations (id) on delete restrict
);
create index if not exists donation_items_donation_idx on donation_items (donation_id, item_id);

create table if not exists testimonials (
    id      uuid primary key,
    user_id uuid not null,
    text    varchar(500) not null,
    date    date not null default current_date,
    constraint testimonials_user_id_fkey foreign key (user_id) references users (id) on delete restrict
);
`

// QLockScope serializes ordered-sequence writes for one scope key until the
// surrounding transaction ends.
const QLockScope = `--sql 8c0717cc-9829-44d1-90d8-c6463568e7e8
select pg_advisory_xact_lock(hashtext($1::text));
`
